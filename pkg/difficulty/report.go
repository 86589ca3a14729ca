package difficulty

import (
	"math"
	"sort"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

// FileStats describes a single selected file.
type FileStats struct {
	Path       string  `json:"path"`
	Lines      int     `json:"lines"`
	Tokens     int     `json:"tokens"`
	Size       int     `json:"size"`
	Percentage float64 `json:"percentage"`
}

// TokenDistribution counts files within a token range.
type TokenDistribution struct {
	RangeLabel string  `json:"range_label"`
	FileCount  int     `json:"file_count"`
	Percentage float64 `json:"percentage"`
}

// Report is a detailed breakdown of a selection, used by the stats command
// and the stats page.
type Report struct {
	Difficulty   Result              `json:"difficulty"`
	TotalTokens  int                 `json:"total_tokens"`
	TotalSize    int                 `json:"total_size"`
	Languages    []LanguageStats     `json:"languages"`
	LargestFiles []FileStats         `json:"largest_files"`
	Distribution []TokenDistribution `json:"distribution"`
	AvgTokens    int                 `json:"avg_tokens"`
	MedianTokens int                 `json:"median_tokens"`
}

// NewReport analyzes files, keeping the topN largest by tokens.
func NewReport(files []filetree.FileRecord, topN int) Report {
	r := Report{
		Difficulty: Estimate(files),
		Languages:  Breakdown(files),
	}
	if len(files) == 0 {
		r.Distribution = distribution(nil)
		return r
	}

	all := make([]FileStats, 0, len(files))
	counts := make([]int, 0, len(files))
	for _, f := range files {
		tokens := EstimateTokens(f.Content)
		all = append(all, FileStats{
			Path:   f.Path,
			Lines:  f.LineCount,
			Tokens: tokens,
			Size:   len(f.Content),
		})
		counts = append(counts, tokens)
		r.TotalTokens += tokens
		r.TotalSize += len(f.Content)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Tokens > all[j].Tokens
	})
	if topN < 0 {
		topN = 0
	}
	if topN > len(all) {
		topN = len(all)
	}
	r.LargestFiles = all[:topN]
	for i := range r.LargestFiles {
		if r.TotalTokens > 0 {
			r.LargestFiles[i].Percentage = float64(r.LargestFiles[i].Tokens) * 100 / float64(r.TotalTokens)
		}
	}

	r.Distribution = distribution(counts)
	r.AvgTokens = r.TotalTokens / len(files)
	r.MedianTokens = median(counts)
	return r
}

func distribution(tokenCounts []int) []TokenDistribution {
	ranges := []struct {
		min   int
		max   int
		label string
	}{
		{0, 1000, "< 1k tokens"},
		{1000, 5000, "1k-5k tokens"},
		{5000, 10000, "5k-10k tokens"},
		{10000, math.MaxInt, "> 10k tokens"},
	}

	dist := make([]TokenDistribution, len(ranges))
	for i, r := range ranges {
		dist[i].RangeLabel = r.label
		for _, count := range tokenCounts {
			if count >= r.min && count < r.max {
				dist[i].FileCount++
			}
		}
		if len(tokenCounts) > 0 {
			dist[i].Percentage = float64(dist[i].FileCount) * 100 / float64(len(tokenCounts))
		}
	}
	return dist
}

func median(counts []int) int {
	if len(counts) == 0 {
		return 0
	}
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
