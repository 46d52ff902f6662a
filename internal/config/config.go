// Package config loads the generate configuration: which riddle runs to
// build, where to store them and where to write the archive.
//
// Files are YAML. Unknown keys are rejected while decoding; value
// constraints live in an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/riddle"
)

//go:embed schema.cue
var schemaSource string

// DefaultDatabase is used when a config names no database.
const DefaultDatabase = "matchstick.db"

// Config is a decoded configuration file.
type Config struct {
	Database string `yaml:"database" json:"database,omitempty"`
	Workers  int    `yaml:"workers" json:"workers,omitempty"`
	Archive  string `yaml:"archive" json:"archive,omitempty"`
	Runs     []Run  `yaml:"runs" json:"runs"`
}

// Run describes one riddle build.
type Run struct {
	Name  string `yaml:"name" json:"name,omitempty"`
	Shape int    `yaml:"shape" json:"shape"`
	Arity int    `yaml:"arity" json:"arity"`
	Kind  string `yaml:"kind" json:"kind"`
}

// Params converts the run to build parameters.
func (r Run) Params() (riddle.Params, error) {
	kind, err := engine.ParseKind(r.Kind)
	if err != nil {
		return riddle.Params{}, err
	}
	return riddle.Params{Shape: r.Shape, Arity: r.Arity, Kind: kind}, nil
}

// Default returns the configuration used when no file is given: single
// match moves on two and three digit equations.
func Default() *Config {
	return &Config{
		Database: DefaultDatabase,
		Runs: []Run{
			{Name: "pairs", Shape: 2, Arity: 1, Kind: string(engine.KindMove)},
			{Name: "sums", Shape: 3, Arity: 1, Kind: string(engine.KindMove)},
		},
	}
}

// ErrEmpty is returned for a file with no YAML document.
var ErrEmpty = errors.New("config: empty document")

// Error is a schema violation at a field path such as "runs.0.shape".
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Message)
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML strictly, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	for i := range c.Runs {
		if c.Runs[i].Kind == "" {
			c.Runs[i].Kind = string(engine.KindMove)
		}
	}
}

// Validate checks c against the schema. It returns the first violation.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	return &Error{
		Path:    strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(format, args...),
	}
}
