package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/export"
)

// ExportResult is the JSON output of the export command.
type ExportResult struct {
	Job      string `json:"job"`
	Path     string `json:"path,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <job-id>",
		Short: "Export a job as a markdown document",
		Long: `Render a job with its client, invoice, objectives, notes and every
timesheet as markdown. Only employee contacts marked for export are
included.

The document is printed unless --output names a file to write it to.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("job", args[0])
			if err != nil {
				return newFormatter(rootOpts, cmd).Fail(ErrCodeInvalidArgs, err)
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			job, err := s.repo.Job(ctx, id)
			if err != nil {
				return s.fail("", err)
			}
			view, err := s.repo.JobView(ctx, job)
			if err != nil {
				return s.fail("", err)
			}
			doc, err := export.Markdown(view)
			if err != nil {
				return s.fail("", err)
			}

			if output == "" {
				if s.out.Format == "json" {
					return s.out.Success(ExportResult{Job: id.String(), Markdown: doc})
				}
				_, err := fmt.Fprint(s.out.Writer, doc)
				return err
			}

			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return s.fail(ErrCodeGeneric, fmt.Errorf("writing export: %w", err))
			}
			s.logger.Info("job exported", "job", id, "path", output)
			if s.out.Format == "json" {
				return s.out.Success(ExportResult{Job: id.String(), Path: output})
			}
			return s.out.Success(fmt.Sprintf("✓ Exported job %s to %s", id, output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file")
	return cmd
}
