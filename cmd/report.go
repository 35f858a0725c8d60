package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spigell/talent-matcher/internal/candidates"
	"github.com/spigell/talent-matcher/internal/filtering"
	"github.com/spigell/talent-matcher/internal/matching"
)

type rankReport struct {
	Requirements []string           `json:"requirements"`
	Entries      []reportEntry      `json:"entries"`
	Failures     []reportFailure    `json:"failures,omitempty"`
	Filters      []filtering.Status `json:"filters"`
}

type reportEntry struct {
	Position     int                `json:"position"`
	CandidateID  string             `json:"candidate_id"`
	Name         string             `json:"name,omitempty"`
	OverallScore float64            `json:"overall_score"`
	Breakdown    matching.Breakdown `json:"breakdown"`
}

type reportFailure struct {
	CandidateID string `json:"candidate_id"`
	Error       string `json:"error"`
}

func newRankReport(job matching.JobProfile, batch *candidates.Batch, entries []matching.RankedEntry, failures []matching.CandidateError, filters []filtering.Status) *rankReport {
	report := &rankReport{
		Requirements: job.Requirements(),
		Entries:      make([]reportEntry, 0, len(entries)),
		Filters:      filters,
	}

	for i, e := range entries {
		entry := reportEntry{
			Position:     i + 1,
			CandidateID:  e.CandidateID,
			OverallScore: e.Result.OverallScore,
			Breakdown:    e.Result.Breakdown,
		}
		if c := batch.FindByID(e.CandidateID); c != nil {
			entry.Name = c.Name
		}
		report.Entries = append(report.Entries, entry)
	}

	for _, f := range failures {
		report.Failures = append(report.Failures, reportFailure{CandidateID: f.CandidateID, Error: f.Err.Error()})
	}

	return report
}

// WriteTable prints one line per entry with the score breakdown.
func (r *rankReport) WriteTable(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCANDIDATE\tOVERALL\tTEXT\tSKILLS\tEXPERIENCE")
	for _, e := range r.Entries {
		label := e.CandidateID
		if e.Name != "" {
			label = fmt.Sprintf("%s (%s)", e.Name, e.CandidateID)
		}
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
			e.Position, label, e.OverallScore,
			e.Breakdown.TextSimilarity, e.Breakdown.SkillsMatch, e.Breakdown.ExperienceScore,
		)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "-\t%s\tfailed: %s\t\t\t\n", f.CandidateID, f.Error)
	}
	return w.Flush()
}
