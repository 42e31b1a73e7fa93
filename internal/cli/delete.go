package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
)

// DeleteResult is the output of the delete command.
type DeleteResult struct {
	Kind    entity.Kind `json:"kind"`
	ID      string      `json:"id"`
	Cascade bool        `json:"cascade"`
}

func (r DeleteResult) String() string {
	if r.Cascade {
		return fmt.Sprintf("✓ Deleted %s %s and its dependents", r.Kind, r.ID)
	}
	return fmt.Sprintf("✓ Deleted %s %s", r.Kind, r.ID)
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record",
		Long: `Delete a record by id.

With --cascade, deleting a location also deletes every location inside it
and every organization at any of them, and deleting an employee removes
their timesheets from every job. Without --cascade dependents are left
dangling, or the delete is refused when the config sets
delete: restrict: true.

Deleting a record that does not exist succeeds.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			kind, err := entity.ParseKind(args[0])
			if err != nil {
				return out.Fail(ErrCodeInvalidArgs, err)
			}
			id, err := parseID(string(kind), args[1])
			if err != nil {
				return out.Fail(ErrCodeInvalidArgs, err)
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.repo.Delete(cmd.Context(), kind, id, cascade); err != nil {
				return s.fail("", err)
			}
			return s.out.Success(DeleteResult{Kind: kind, ID: id.String(), Cascade: cascade})
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "also delete or scrub dependent records")
	return cmd
}
