package syncer

import "fmt"

// Outcome is the terminal state of a single mod reconciliation.
type Outcome int

const (
	OutcomeSkip Outcome = iota
	OutcomeInstall
	OutcomeUpdate
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkip:
		return "skip"
	case OutcomeInstall:
		return "install"
	case OutcomeUpdate:
		return "update"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result describes what happened to one project of the collection.
type Result struct {
	ModID   string
	Outcome Outcome

	// Filename is the managed file name of the selected version.
	Filename string
	// Replaced is the superseded file name, set for updates.
	Replaced string

	// Err is the skip reason for OutcomeSkip and the cause for
	// OutcomeFailed.
	Err error
}

// Summary counts results by outcome.
type Summary struct {
	Installed int
	Updated   int
	Skipped   int
	Failed    int
}

func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case OutcomeInstall:
			s.Installed++
		case OutcomeUpdate:
			s.Updated++
		case OutcomeSkip:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}
