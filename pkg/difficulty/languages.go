package difficulty

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

// LanguageStats summarizes the selected files of one language.
type LanguageStats struct {
	Name       string  `json:"name"`
	FileCount  int     `json:"file_count"`
	Lines      int     `json:"lines"`
	Tokens     int     `json:"tokens"`
	Percentage float64 `json:"percentage"`
}

// Breakdown groups files by language, largest token share first.
func Breakdown(files []filetree.FileRecord) []LanguageStats {
	byName := make(map[string]*LanguageStats)
	total := 0
	for _, f := range files {
		lang := languageFromExt(strings.ToLower(filepath.Ext(f.Path)))
		stats, ok := byName[lang]
		if !ok {
			stats = &LanguageStats{Name: lang}
			byName[lang] = stats
		}
		tokens := EstimateTokens(f.Content)
		stats.FileCount++
		stats.Lines += f.LineCount
		stats.Tokens += tokens
		total += tokens
	}

	out := make([]LanguageStats, 0, len(byName))
	for _, stats := range byName {
		if total > 0 {
			stats.Percentage = float64(stats.Tokens) * 100 / float64(total)
		}
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tokens != out[j].Tokens {
			return out[i].Tokens > out[j].Tokens
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var langMap = map[string]string{
	".go":       "Go",
	".js":       "JavaScript",
	".jsx":      "JavaScript",
	".ts":       "TypeScript",
	".tsx":      "TypeScript",
	".py":       "Python",
	".java":     "Java",
	".c":        "C",
	".cpp":      "C++",
	".cc":       "C++",
	".h":        "C/C++",
	".hpp":      "C++",
	".rs":       "Rust",
	".rb":       "Ruby",
	".php":      "PHP",
	".cs":       "C#",
	".swift":    "Swift",
	".kt":       "Kotlin",
	".scala":    "Scala",
	".sh":       "Shell",
	".bash":     "Shell",
	".zsh":      "Shell",
	".md":       "Markdown",
	".markdown": "Markdown",
	".yml":      "YAML",
	".yaml":     "YAML",
	".json":     "JSON",
	".xml":      "XML",
	".html":     "HTML",
	".css":      "CSS",
	".sql":      "SQL",
	".toml":     "TOML",
	".txt":      "Text",
}

func languageFromExt(ext string) string {
	if lang, ok := langMap[ext]; ok {
		return lang
	}
	if ext == "" {
		return "Other"
	}
	return "Other (" + strings.TrimPrefix(ext, ".") + ")"
}
