package convert

import (
	"github.com/luismascotto/vtt2srt/internal/model"
	"github.com/luismascotto/vtt2srt/internal/subtitle"
)

// Status is the outcome of one file.
type Status string

const (
	StatusConverted Status = "converted"
	// StatusSkipped marks a file that does not decode under the chosen encoding.
	StatusSkipped  Status = "skipped"
	StatusDeclined Status = "declined"
	StatusIgnored  Status = "ignored"
	StatusFailed   Status = "failed"
)

type Result struct {
	Input  string
	Output string
	Status Status
	Stats  subtitle.Stats
	Err    error
}

// Report collects per-file results of a run in processing order.
type Report struct {
	Results []Result
	// Aborted is set when the reviewer asked to stop before the batch finished.
	Aborted bool
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Count returns how many results have the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Decision is a reviewer's answer for one converted document.
type Decision int

const (
	DecisionApply Decision = iota
	DecisionSkip
	DecisionQuit
)

// Preview is what a Reviewer gets to see before a file is written.
type Preview struct {
	Input  string
	Output string
	Mode   model.Mode
	Text   string
	Stats  subtitle.Stats
}

// Reviewer decides whether a converted document gets written.
type Reviewer interface {
	Review(p Preview) (Decision, error)
}
