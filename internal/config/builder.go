package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithGlyphs sets the piece glyph set.
func (b *ConfigBuilder) WithGlyphs(g GlyphSet) *ConfigBuilder {
	b.cfg.Display.Glyphs = g
	return b
}

// WithCoordinates controls whether board coordinates are drawn.
func (b *ConfigBuilder) WithCoordinates(show bool) *ConfigBuilder {
	b.cfg.Display.ShowCoordinates = show
	return b
}

// WithFlip controls whether the board is drawn from Black's side on Black's turn.
func (b *ConfigBuilder) WithFlip(flip bool) *ConfigBuilder {
	b.cfg.Display.FlipForBlack = flip
	return b
}

// WithStorePath sets the database directory.
func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.Store.Path = path
	b.cfg.Store.InMemory = false
	return b
}

// WithInMemoryStore keeps the store in memory.
func (b *ConfigBuilder) WithInMemoryStore() *ConfigBuilder {
	b.cfg.Store.InMemory = true
	return b
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithTimeouts sets the server read and write timeouts.
func (b *ConfigBuilder) WithTimeouts(read, write time.Duration) *ConfigBuilder {
	b.cfg.Server.ReadTimeout = read
	b.cfg.Server.WriteTimeout = write
	return b
}

// WithAllowedOrigins sets the CORS origins.
func (b *ConfigBuilder) WithAllowedOrigins(origins ...string) *ConfigBuilder {
	b.cfg.Server.AllowedOrigins = origins
	return b
}

// WithWorkers sets the replay worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Replay.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
