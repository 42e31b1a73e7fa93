package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/clerk/internal/entity"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	File  string
	Close bool
	Issue bool
	Pay   bool
	At    string
}

func (o *UpdateOptions) jobFlags() bool {
	return o.Close || o.Issue || o.Pay
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Replace a record, or close a job and track its invoice",
		Long: `Replace a stored record with the one in a YAML file, in the same shape
"clerk retrieve" prints. The id may be omitted from the file; if present it
must match <id>. The new record's references must resolve, otherwise the
update is refused and the stored record is left as it was.

Jobs can also be moved along without a file: --close marks the job closed,
--issue marks its invoice sent and --pay marks it paid, all at the current
time or at --at.`,
		Example: `  clerk update person 0190f0a8-... -f person.yaml
  clerk update job 0190f0a8-... --close --issue
  clerk update job 0190f0a8-... --pay --at 2024-04-01T12:00:00Z`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file holding the new record")
	cmd.Flags().BoolVar(&opts.Close, "close", false, "close the job")
	cmd.Flags().BoolVar(&opts.Issue, "issue", false, "mark the job's invoice issued")
	cmd.Flags().BoolVar(&opts.Pay, "pay", false, "mark the job's invoice paid")
	cmd.Flags().StringVar(&opts.At, "at", "", "RFC 3339 time for --close, --issue and --pay (default now)")
	return cmd
}

func runUpdate(opts *UpdateOptions, kindArg, idArg string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	kind, err := entity.ParseKind(kindArg)
	if err != nil {
		return out.Fail(ErrCodeInvalidArgs, err)
	}
	id, err := parseID(string(kind), idArg)
	if err != nil {
		return out.Fail(ErrCodeInvalidArgs, err)
	}
	switch {
	case opts.jobFlags() && kind != entity.KindJob:
		return out.Fail(ErrCodeInvalidArgs, errors.New("--close, --issue and --pay only apply to jobs"))
	case opts.File == "" && !opts.jobFlags():
		return out.Fail(ErrCodeInvalidArgs, errors.New("nothing to update: pass --file or a job flag"))
	case opts.At != "" && !opts.jobFlags():
		return out.Fail(ErrCodeInvalidArgs, errors.New("--at needs --close, --issue or --pay"))
	}

	var src []byte
	if opts.File != "" {
		if src, err = os.ReadFile(opts.File); err != nil {
			return out.Fail(ErrCodeInvalidArgs, err)
		}
	}

	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.close()

	at := s.now()
	if opts.At != "" {
		if at, err = time.Parse(time.RFC3339, opts.At); err != nil {
			return s.fail(ErrCodeInvalidArgs, fmt.Errorf("--at: %w", err))
		}
	}

	var updated any
	ctx, r := cmd.Context(), s.repo
	switch kind {
	case entity.KindEmployee:
		updated, err = updateRecord(ctx, id, src, r.Employee, r.EmployeeView, r.UpdateEmployee,
			func(e *entity.Employee) error { e.ID = id; return nil })
	case entity.KindJob:
		updated, err = updateRecord(ctx, id, src, r.Job, r.JobView, r.UpdateJob,
			func(j *entity.Job) error {
				j.ID = id
				return applyJobFlags(j, opts, at)
			})
	case entity.KindLocation:
		updated, err = updateRecord(ctx, id, src, r.Location, r.LocationView, r.UpdateLocation,
			func(l *entity.Location) error { l.ID = id; return nil })
	case entity.KindOrganization:
		updated, err = updateRecord(ctx, id, src, r.Organization, r.OrganizationView, r.UpdateOrganization,
			func(o *entity.Organization) error { o.ID = id; return nil })
	case entity.KindPerson:
		updated, err = updateRecord(ctx, id, src, r.Person, r.PersonView, r.UpdatePerson,
			func(p *entity.Person) error { p.ID = id; return nil })
	}
	if err != nil {
		var ferr *recordFileError
		if errors.As(err, &ferr) || errors.Is(err, entity.ErrJobState) {
			return s.fail(ErrCodeInvalidArgs, err)
		}
		return s.fail("", err)
	}

	s.logger.Info("record updated", "kind", kind, "id", id)
	return s.out.Success(updated)
}

func applyJobFlags(j *entity.Job, opts *UpdateOptions, at time.Time) error {
	if opts.Close {
		if err := j.Close(at); err != nil {
			return err
		}
	}
	if opts.Issue {
		if err := j.IssueInvoice(at); err != nil {
			return err
		}
	}
	if opts.Pay {
		if err := j.PayInvoice(at); err != nil {
			return err
		}
	}
	return nil
}

// recordFileError marks a record file that could not be used.
type recordFileError struct {
	err error
}

func (e *recordFileError) Error() string { return e.err.Error() }
func (e *recordFileError) Unwrap() error { return e.err }

// updateRecord replaces the stored record id. The replacement is decoded
// from src, or is the stored record itself when src is nil, and edit is
// applied to it. The record must already exist and its view must
// materialize before it is written. The stored result is returned.
func updateRecord[E entity.Record, V any](
	ctx context.Context,
	id uuid.UUID,
	src []byte,
	get func(context.Context, uuid.UUID) (E, error),
	view func(context.Context, E) (V, error),
	put func(context.Context, E) error,
	edit func(*E) error,
) (E, error) {
	var zero E

	rec, err := get(ctx, id)
	if err != nil {
		return zero, err
	}

	if src != nil {
		var next E
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&next); err != nil {
			return zero, &recordFileError{err: fmt.Errorf("decode %s: %w", rec.Kind(), err)}
		}
		if fileID := next.RecordID(); fileID != uuid.Nil && fileID != id {
			return zero, &recordFileError{err: fmt.Errorf("record file has id %s, want %s", fileID, id)}
		}
		rec = next
	}

	if err := edit(&rec); err != nil {
		return zero, err
	}
	if _, err := view(ctx, rec); err != nil {
		return zero, err
	}
	if err := put(ctx, rec); err != nil {
		return zero, err
	}
	return get(ctx, id)
}
