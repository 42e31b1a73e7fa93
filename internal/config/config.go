// Package config loads clerk's CUE configuration.
//
// A config file is plain CUE data unified with an embedded schema, so
// defaults are filled in and malformed values are reported with their
// position in the file:
//
//	stores: {
//		default: {path: "records"}
//		archive: {path: "archive.db", backend: "sqlite", codec: "json"}
//		old:     {alias: "archive"}
//	}
//	delete: restrict: true
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/google/uuid"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed default.cue
var defaultSource []byte

// Backend names accepted in a store definition.
const (
	BackendFlatFile = "flatfile"
	BackendSQLite   = "sqlite"
)

// Store is a named location records are kept in.
type Store struct {
	Path    string `json:"path,omitempty"`
	Backend string `json:"backend"`
	Codec   string `json:"codec"`
	Alias   string `json:"alias,omitempty"`
}

type Employees struct {
	// DefaultID is the employee used when a command needs one and none is
	// given.
	DefaultID string `json:"default_id,omitempty"`
}

type Invoices struct {
	DefaultCurrency string `json:"default_currency"`
}

type Timesheets struct {
	// Interval is the billing increment timesheet ends are rounded up to.
	// "0s" disables rounding.
	Interval string `json:"interval"`
}

type Delete struct {
	Restrict bool `json:"restrict"`
}

// Config is the decoded configuration.
type Config struct {
	Stores       map[string]Store `json:"stores"`
	DefaultStore string           `json:"default_store"`
	Employees    Employees        `json:"employees"`
	Invoices     Invoices         `json:"invoices"`
	Timesheets   Timesheets       `json:"timesheets"`
	Delete       Delete           `json:"delete"`

	// dir is the directory relative store paths are resolved against.
	dir string
}

// Error is a configuration error with its CUE position, if known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// ErrStoreNotFound is returned when a store name is not defined.
var ErrStoreNotFound = errors.New("store not defined")

// convertError turns the first CUE error into an Error.
func convertError(err error) error {
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		return &Error{Message: fmt.Sprintf(format, args...), Pos: e.Position()}
	}
	return &Error{Message: err.Error()}
}

// Default returns the configuration written by "clerk init".
func Default() []byte {
	return defaultSource
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.dir = abs
	return cfg, nil
}

// Parse compiles src, unifies it with the schema and decodes the result.
// filename is used only in error positions.
func Parse(src []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, convertError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, convertError(err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, convertError(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks what the schema cannot express.
func (c *Config) validate() error {
	for name, s := range c.Stores {
		switch {
		case s.Alias != "" && s.Path != "":
			return &Error{Message: fmt.Sprintf("store %q: alias and path are mutually exclusive", name)}
		case s.Alias == "" && s.Path == "":
			return &Error{Message: fmt.Sprintf("store %q: needs a path or an alias", name)}
		}
		if _, err := c.Store(name); err != nil {
			return err
		}
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, _, err := c.DefaultEmployee(); err != nil {
		return err
	}
	return nil
}

// Store resolves name, following aliases, to a concrete store. An empty
// name selects DefaultStore. Relative paths are made absolute against the
// config file's directory.
func (c *Config) Store(name string) (Store, error) {
	if name == "" {
		name = c.DefaultStore
	}

	seen := make(map[string]bool)
	for {
		if seen[name] {
			return Store{}, &Error{Message: fmt.Sprintf("store %q: alias cycle", name)}
		}
		seen[name] = true

		s, ok := c.Stores[name]
		if !ok {
			return Store{}, fmt.Errorf("%w: %q", ErrStoreNotFound, name)
		}
		if s.Alias == "" {
			if c.dir != "" && !filepath.IsAbs(s.Path) {
				s.Path = filepath.Join(c.dir, s.Path)
			}
			return s, nil
		}
		name = s.Alias
	}
}

// Interval parses the timesheet rounding interval.
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timesheets.Interval)
	if err != nil {
		return 0, &Error{Message: fmt.Sprintf("timesheets.interval: %v", err)}
	}
	if d < 0 {
		return 0, &Error{Message: "timesheets.interval: must not be negative"}
	}
	return d, nil
}

// DefaultEmployee returns the configured default employee id. ok is false
// when none is configured.
func (c *Config) DefaultEmployee() (id uuid.UUID, ok bool, err error) {
	if c.Employees.DefaultID == "" {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(c.Employees.DefaultID)
	if err != nil {
		return uuid.Nil, false, &Error{Message: fmt.Sprintf("employees.default_id: %v", err)}
	}
	return id, true, nil
}
