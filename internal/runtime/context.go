// Package runtime provides the process-wide context shared by CLI commands.
package runtime

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/manav03panchal/choreboard/internal/config"
	"github.com/manav03panchal/choreboard/internal/logging"
	"github.com/manav03panchal/choreboard/internal/output"
	"github.com/manav03panchal/choreboard/internal/parser"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Formatter *output.Formatter
	Parser    *parser.Parser

	// Debug mode
	Debug bool

	store storage.Store
}

// Options configures the runtime context. Empty fields keep the value from
// the config file and environment.
type Options struct {
	ConfigPath string
	Driver     string
	DBPath     string
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
	Writer     io.Writer
	Now        func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New loads configuration and prepares the formatter. The store is opened on
// first use by Store.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}
	if opts.DBPath != "" {
		cfg.SetDatabase(opts.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.LogConfig()
	if opts.Debug {
		logCfg = logging.DebugConfig()
	}
	logging.Init(logCfg)

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	if opts.Writer != nil {
		formatter.Writer = opts.Writer
	}

	return &Context{
		Config:    cfg,
		Formatter: formatter,
		Parser:    parser.New(opts.Now),
		Debug:     opts.Debug,
	}, nil
}

// Store opens the configured backend once and returns it.
func (c *Context) Store(ctx context.Context) (storage.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	opts := c.Config.StoreOptions()
	c.Debugf("opening %s store at %s", opts.Driver, c.storeLocation(opts))
	s, err := storage.Open(ctx, opts)
	if err != nil {
		return nil, WrapDiskFullError(err, "open", opts.Path)
	}
	c.store = s
	return s, nil
}

func (c *Context) storeLocation(opts storage.Options) string {
	switch {
	case opts.InMemory:
		return config.MemoryDatabase
	case opts.DSN != "":
		return logging.MaskDSN(opts.DSN)
	case opts.Path != "":
		return opts.Path
	}
	return storage.DefaultPath(opts.Driver)
}

// Close closes the store if it was opened.
func (c *Context) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

// Renderer returns the renderer for the configured output format.
func (c *Context) Renderer() output.Renderer {
	return c.Formatter.Renderer()
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf logs debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		logging.DebugLog(fmt.Sprintf(format, args...))
	}
}
