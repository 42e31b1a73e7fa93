package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
)

// OutersResult is the output of the outers command.
type OutersResult struct {
	Location entity.Location   `json:"location"`
	Outers   []entity.Location `json:"outers"`
}

// String prints the location and its outers, innermost first, one per line.
func (r OutersResult) String() string {
	names := []string{r.Location.Name}
	for _, o := range r.Outers {
		names = append(names, o.Name)
	}
	return strings.Join(names, "\n")
}

// NewOutersCommand creates the outers command.
func NewOutersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "outers <location-id>",
		Short:         "List the locations enclosing a location, innermost first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("location", args[0])
			if err != nil {
				return newFormatter(rootOpts, cmd).Fail(ErrCodeInvalidArgs, err)
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			l, err := s.repo.Location(ctx, id)
			if err != nil {
				return s.fail("", err)
			}
			outers, err := s.repo.Outers(ctx, l)
			if err != nil {
				return s.fail("", err)
			}
			if outers == nil {
				outers = []entity.Location{}
			}
			return s.out.Success(OutersResult{Location: l, Outers: outers})
		},
	}
}
