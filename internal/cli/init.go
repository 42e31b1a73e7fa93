package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/config"
)

// InitResult is the output of the init command.
type InitResult struct {
	Config        string `json:"config"`
	ConfigCreated bool   `json:"config_created"`
	Store         string `json:"store"`
	Backend       string `json:"backend"`
	Path          string `json:"path"`
}

func (r InitResult) String() string {
	s := fmt.Sprintf("✓ Store %q (%s) ready at %s", r.Store, r.Backend, r.Path)
	if r.ConfigCreated {
		s = fmt.Sprintf("✓ Wrote default config to %s\n%s", r.Config, s)
	}
	return s
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and initialize the store",
		Long: `Write a default config file if none exists, then prepare the selected
store for every record kind. Running init on an existing store is safe.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	created, err := writeDefaultConfig(opts.Config)
	if err != nil {
		return newFormatter(opts, cmd).Fail(ErrCodeConfig, err)
	}

	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.repo.Init(cmd.Context()); err != nil {
		return s.fail(ErrCodeStore, err)
	}

	return s.out.Success(InitResult{
		Config:        opts.Config,
		ConfigCreated: created,
		Store:         s.storeName,
		Backend:       s.store.Backend,
		Path:          s.store.Path,
	})
}

// writeDefaultConfig writes the default config to path unless a file is
// already there.
func writeDefaultConfig(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, config.Default(), 0o644); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
