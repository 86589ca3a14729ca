// Package difficulty scores how demanding a prompt is likely to be from the
// files it carries.
package difficulty

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

// Label is the categorical difficulty of a selection.
type Label string

const (
	Easy   Label = "Easy"
	Medium Label = "Medium"
	Hard   Label = "Hard"
)

// Band upper bounds, both inclusive.
const (
	EasyMax   = 25.0
	MediumMax = 50.0
)

const (
	pointsPerFile = 5.0
	linesPerPoint = 50.0
)

// Result is derived entirely from the selected files.
type Result struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	FileCount  int     `json:"file_count"`
	TotalLines int     `json:"total_lines"`
}

// Estimate scores files as fileCount*5 + totalLines/50.
func Estimate(files []filetree.FileRecord) Result {
	res := Result{FileCount: len(files)}
	for _, f := range files {
		res.TotalLines += f.LineCount
	}
	res.Score = float64(res.FileCount)*pointsPerFile + float64(res.TotalLines)/linesPerPoint
	res.Label = Classify(res.Score)
	return res
}

// Classify maps a score onto its band.
func Classify(score float64) Label {
	switch {
	case score <= EasyMax:
		return Easy
	case score <= MediumMax:
		return Medium
	default:
		return Hard
	}
}

// Tooltip describes the inputs of the score and the three bands.
func (r Result) Tooltip() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Files: %d\n", r.FileCount)
	fmt.Fprintf(&b, "Total lines: %d\n", r.TotalLines)
	fmt.Fprintf(&b, "Score: %.2f\n", r.Score)
	fmt.Fprintf(&b, "%s: score ≤ %g\n", Easy, EasyMax)
	fmt.Fprintf(&b, "%s: %g < score ≤ %g\n", Medium, EasyMax, MediumMax)
	fmt.Fprintf(&b, "%s: score > %g", Hard, MediumMax)
	return b.String()
}
