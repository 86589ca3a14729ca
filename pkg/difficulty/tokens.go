package difficulty

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EstimateTokens approximates the token count of text as characters / 4.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

var printer = message.NewPrinter(language.English)

// FormatTokens renders n with thousands separators, e.g. 12,345.
func FormatTokens(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatTokenCount formats a token count compactly for narrow labels.
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("%d", tokens)
	} else if tokens < 1000000 {
		return fmt.Sprintf("%.1fk", float64(tokens)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(tokens)/1000000)
	}
}
