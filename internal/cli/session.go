package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/codec"
	"github.com/roach88/clerk/internal/config"
	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/store"
)

// session is the state shared by commands that work on a store: the
// loaded config, the selected store and a Repo over it.
type session struct {
	opts      *RootOptions
	out       *OutputFormatter
	logger    *slog.Logger
	cfg       *config.Config
	storeName string
	store     config.Store
	repo      *records.Repo
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger returns a text logger on the command's stderr; --verbose
// selects Debug.
func newLogger(opts *RootOptions, cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openSession loads the config and opens the selected store. Failures are
// reported through the formatter and returned as an ExitError.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	out := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w (run \"clerk init\" to create it)", err)
		}
		return nil, out.Fail(ErrCodeConfig, err)
	}

	st, err := cfg.Store(opts.Store)
	if err != nil {
		return nil, out.Fail(ErrCodeConfig, err)
	}
	name := opts.Store
	if name == "" {
		name = cfg.DefaultStore
	}

	repo, err := openRepo(st, opts, cfg, logger)
	if err != nil {
		return nil, out.Fail(ErrCodeStore, err)
	}

	logger.Debug("store opened", "store", name, "backend", st.Backend, "path", st.Path)
	return &session{
		opts:      opts,
		out:       out,
		logger:    logger,
		cfg:       cfg,
		storeName: name,
		store:     st,
		repo:      repo,
	}, nil
}

func openRepo(st config.Store, opts *RootOptions, cfg *config.Config, logger *slog.Logger) (*records.Repo, error) {
	c, err := codec.ByName(st.Codec)
	if err != nil {
		return nil, err
	}

	var backend store.Backend
	switch st.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(st.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		db, err := store.OpenSQLite(st.Path)
		if err != nil {
			return nil, err
		}
		backend = db
	default:
		backend = store.NewFlatFile(st.Path)
	}

	ids := opts.IDs
	if ids == nil {
		ids = entity.UUIDv7Generator{}
	}

	return records.New(backend, c, ids,
		records.WithLogger(logger),
		records.WithRestrict(cfg.Delete.Restrict),
	), nil
}

func (s *session) close() {
	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing store", "error", err)
	}
}

func (s *session) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}

// fail reports err, classifying it when code is empty.
func (s *session) fail(code string, err error) error {
	return s.out.Fail(code, err)
}

// parseID parses a record id argument.
func parseID(what, arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", what, arg, err)
	}
	return id, nil
}
