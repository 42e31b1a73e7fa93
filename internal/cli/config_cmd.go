package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/config"
)

// ConfigResult is the output of "config show".
type ConfigResult struct {
	Path     string         `json:"path"`
	Store    string         `json:"store"`
	Resolved config.Store   `json:"resolved"`
	Config   *config.Config `json:"config"`
}

func (r ConfigResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config:   %s\n", r.Path)
	fmt.Fprintf(&b, "store:    %s (%s, %s) at %s\n", r.Store, r.Resolved.Backend, r.Resolved.Codec, r.Resolved.Path)
	fmt.Fprintf(&b, "currency: %s\n", r.Config.Invoices.DefaultCurrency)
	fmt.Fprintf(&b, "interval: %s\n", r.Config.Timesheets.Interval)
	fmt.Fprintf(&b, "restrict: %t", r.Config.Delete.Restrict)
	if r.Config.Employees.DefaultID != "" {
		fmt.Fprintf(&b, "\nemployee: %s", r.Config.Employees.DefaultID)
	}
	return b.String()
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration and the selected store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)

			cfg, err := config.Load(rootOpts.Config)
			if err != nil {
				return out.Fail(ErrCodeConfig, err)
			}
			name := rootOpts.Store
			if name == "" {
				name = cfg.DefaultStore
			}
			st, err := cfg.Store(name)
			if err != nil {
				return out.Fail(ErrCodeConfig, err)
			}

			return out.Success(ConfigResult{Path: rootOpts.Config, Store: name, Resolved: st, Config: cfg})
		},
	})

	return cmd
}
