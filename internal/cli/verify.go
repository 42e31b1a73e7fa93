package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
)

// VerifyProblem is one record with a dangling reference.
type VerifyProblem struct {
	Kind    entity.Kind `json:"kind"`
	ID      string      `json:"id"`
	Message string      `json:"message"`
}

// VerifyResult is the output of the verify command.
type VerifyResult struct {
	OK       bool                `json:"ok"`
	Checked  map[entity.Kind]int `json:"checked"`
	Problems []VerifyProblem     `json:"problems,omitempty"`
}

func (r VerifyResult) String() string {
	total := 0
	for _, n := range r.Checked {
		total += n
	}
	if r.OK {
		return fmt.Sprintf("✓ %d records checked, no problems", total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✗ %d records checked, %d problems", total, len(r.Problems))
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "\n  %s %s: %s", p.Kind, p.ID, p.Message)
	}
	return b.String()
}

func newVerifyResult(report records.Report) VerifyResult {
	res := VerifyResult{OK: report.OK(), Checked: report.Checked}
	for _, p := range report.Problems {
		res.Problems = append(res.Problems, VerifyProblem{
			Kind:    p.Kind,
			ID:      p.ID.String(),
			Message: p.Err.Error(),
		})
	}
	return res
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every record's references",
		Long: `Materialize the view of every stored record and report each one with
a reference to a missing record or a cyclic location hierarchy.

Exits with status 1 when problems are found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()

			report, err := s.repo.Verify(cmd.Context())
			if err != nil {
				return s.fail("", err)
			}

			res := newVerifyResult(report)
			if err := s.out.Success(res); err != nil {
				return err
			}
			if !res.OK {
				return NewExitError(ExitFailure, fmt.Sprintf("%s: %d problems found", ErrCodeVerifyFailed, len(res.Problems)))
			}
			return nil
		},
	}
}
