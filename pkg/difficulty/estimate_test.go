package difficulty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

func records(lines ...int) []filetree.FileRecord {
	out := make([]filetree.FileRecord, len(lines))
	for i, n := range lines {
		out[i] = filetree.FileRecord{Path: "f", LineCount: n}
	}
	return out
}

func TestEstimate_Empty(t *testing.T) {
	res := Estimate(nil)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, Easy, res.Label)
	assert.Equal(t, 0, res.FileCount)
	assert.Equal(t, 0, res.TotalLines)
}

func TestEstimate_Formula(t *testing.T) {
	res := Estimate(records(100, 50, 25))
	assert.Equal(t, 3, res.FileCount)
	assert.Equal(t, 175, res.TotalLines)
	assert.InDelta(t, 3*5.0+175/50.0, res.Score, 1e-9)
	assert.Equal(t, Easy, res.Label)
}

func TestEstimate_Bands(t *testing.T) {
	tests := []struct {
		name  string
		files []filetree.FileRecord
		score float64
		want  Label
	}{
		{"five files no lines", records(0, 0, 0, 0, 0), 25, Easy},
		{"just over easy", records(0, 0, 0, 0, 1), 25.02, Medium},
		{"ten files", records(0, 0, 0, 0, 0, 0, 0, 0, 0, 0), 50, Medium},
		{"one file many lines", records(2251), 50.02, Hard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Estimate(tt.files)
			assert.InDelta(t, tt.score, res.Score, 1e-9)
			assert.Equal(t, tt.want, res.Label)
		})
	}
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, Easy, Classify(0))
	assert.Equal(t, Easy, Classify(25.0))
	assert.Equal(t, Medium, Classify(25.01))
	assert.Equal(t, Medium, Classify(50.0))
	assert.Equal(t, Hard, Classify(50.01))
}

func TestResult_Tooltip(t *testing.T) {
	tip := Estimate(records(10, 40)).Tooltip()
	assert.Contains(t, tip, "Files: 2")
	assert.Contains(t, tip, "Total lines: 50")
	assert.Contains(t, tip, "Score: 11.00")
	assert.Contains(t, tip, "Easy: score ≤ 25")
	assert.Contains(t, tip, "Medium: 25 < score ≤ 50")
	assert.Contains(t, tip, "Hard: score > 50")
	assert.Len(t, strings.Split(tip, "\n"), 6)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 2, EstimateTokens("abcdefghi"))
	assert.Equal(t, 1, EstimateTokens("├──├"), "counts characters, not bytes")

	assert.Equal(t, "0", FormatTokens(0))
	assert.Equal(t, "999", FormatTokens(999))
	assert.Equal(t, "12,345", FormatTokens(12345))
	assert.Equal(t, "1,234,567", FormatTokens(1234567))

	assert.Equal(t, "950", FormatTokenCount(950))
	assert.Equal(t, "1.5k", FormatTokenCount(1500))
	assert.Equal(t, "2.0M", FormatTokenCount(2000000))
}

func TestBreakdown(t *testing.T) {
	files := []filetree.FileRecord{
		filetree.NewFileRecord("a.go", strings.Repeat("x", 400)),
		filetree.NewFileRecord("b.go", strings.Repeat("x", 400)),
		filetree.NewFileRecord("README.md", strings.Repeat("x", 200)),
		filetree.NewFileRecord("Makefile", ""),
	}
	stats := Breakdown(files)
	if assert.Len(t, stats, 3) {
		assert.Equal(t, "Go", stats[0].Name)
		assert.Equal(t, 2, stats[0].FileCount)
		assert.Equal(t, 200, stats[0].Tokens)
		assert.InDelta(t, 80.0, stats[0].Percentage, 1e-9)
		assert.Equal(t, "Markdown", stats[1].Name)
		assert.Equal(t, "Other", stats[2].Name)
	}
}
