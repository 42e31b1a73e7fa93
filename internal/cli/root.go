package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string
	Store   string

	// Now and IDs override the clock and the id source (for testing).
	// If nil, time.Now and UUIDv7Generator are used.
	Now func() time.Time
	IDs entity.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultConfigPath returns $CLERK_CONFIG, or config.cue in the user's
// config directory.
func DefaultConfigPath() string {
	if path := os.Getenv("CLERK_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "clerk.cue"
	}
	return filepath.Join(dir, "clerk", "config.cue")
}

// NewRootCommand creates the root command for the clerk CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clerk",
		Short: "clerk - business records on plain files",
		Long: `Keep track of people, organizations, locations, employees and
billable jobs as one file per record, and find them again with structural
queries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", DefaultConfigPath(), "path to config.cue ($CLERK_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", os.Getenv("CLERK_STORE"), "store to use ($CLERK_STORE, default from config)")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewRetrieveCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewOutersCommand(opts))
	cmd.AddCommand(NewTimeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}
