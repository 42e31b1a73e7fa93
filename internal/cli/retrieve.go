package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/query"
)

// RetrieveOptions holds flags for the retrieve command.
type RetrieveOptions struct {
	*RootOptions
	Query string
	View  bool
}

// NewRetrieveCommand creates the retrieve command.
func NewRetrieveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RetrieveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "retrieve <kind>",
		Short: "Retrieve records matching a query",
		Long: `Retrieve every record of a kind (location, person, organization,
employee or job) matching a YAML query file. Without --query every record is
returned.

With --view, references are resolved and the query is tested against the
materialized views, so nested fields (a job's client's location, a
timesheet's employee's title) can be matched.

Example query, jobs for clients in Arizona that are still open:

  client:
    location:
      name: {condition: equal_to, value: Arizona}
  date_close: {condition: equal_to, value: 0001-01-01T00:00:00Z}`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetrieve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "path to a YAML query file")
	cmd.Flags().BoolVar(&opts.View, "view", false, "resolve references and match against views")
	return cmd
}

func runRetrieve(opts *RetrieveOptions, kindArg string, cmd *cobra.Command) error {
	kind, err := entity.ParseKind(kindArg)
	if err != nil {
		return newFormatter(opts.RootOptions, cmd).Fail(ErrCodeInvalidArgs, err)
	}

	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.close()

	var found any
	ctx, r := cmd.Context(), s.repo
	switch kind {
	case entity.KindEmployee:
		found, err = retrieve(ctx, opts, r.RetrieveEmployees, r.RetrieveEmployeeViews)
	case entity.KindJob:
		found, err = retrieve(ctx, opts, r.RetrieveJobs, r.RetrieveJobViews)
	case entity.KindLocation:
		found, err = retrieve(ctx, opts, r.RetrieveLocations, r.RetrieveLocationViews)
	case entity.KindOrganization:
		found, err = retrieve(ctx, opts, r.RetrieveOrganizations, r.RetrieveOrganizationViews)
	case entity.KindPerson:
		found, err = retrieve(ctx, opts, r.RetrievePeople, r.RetrievePersonViews)
	}
	if err != nil {
		var qerr *queryError
		if errors.As(err, &qerr) {
			return s.fail(ErrCodeQuery, qerr.err)
		}
		return s.fail("", err)
	}

	return s.out.Success(found)
}

// queryError marks a failure to load the query file.
type queryError struct {
	err error
}

func (e *queryError) Error() string { return e.err.Error() }
func (e *queryError) Unwrap() error { return e.err }

// retrieve loads the query for one kind and runs it against raw records
// or views. Results are never nil so JSON output is always a list.
func retrieve[Q query.Kind, E, V any](
	ctx context.Context,
	opts *RetrieveOptions,
	raw func(context.Context, Q) ([]E, error),
	views func(context.Context, Q) ([]V, error),
) (any, error) {
	var q Q
	if opts.Query != "" {
		var err error
		if q, err = query.LoadFile[Q](opts.Query); err != nil {
			return nil, &queryError{err: fmt.Errorf("query: %w", err)}
		}
	}

	if opts.View {
		found, err := views(ctx, q)
		if found == nil {
			found = []V{}
		}
		return found, err
	}
	found, err := raw(ctx, q)
	if found == nil {
		found = []E{}
	}
	return found, err
}
