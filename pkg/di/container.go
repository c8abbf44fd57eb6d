// Package di provides dependency injection container
package di

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ssargent/kwire/pkg/config"
	"github.com/ssargent/kwire/pkg/corpus"
	"github.com/ssargent/kwire/pkg/frame"
	"github.com/ssargent/kwire/pkg/logging"
)

// CorpusOpener opens a corpus store in a directory
type CorpusOpener func(dir string) (*corpus.Store, error)

// Container holds all the dependencies for the CLI
type Container struct {
	config       *config.Config
	logger       zerolog.Logger
	logOutput    io.Writer
	corpusOpener CorpusOpener
}

// NewContainer creates a new dependency injection container with defaults
func NewContainer() *Container {
	return &Container{
		config:       config.DefaultConfig(),
		logger:       zerolog.Nop(),
		logOutput:    os.Stderr,
		corpusOpener: corpus.Open,
	}
}

// Configure installs cfg and rebuilds the logger from its logging level
func (c *Container) Configure(cfg *config.Config) error {
	logger, err := logging.New(c.logOutput, cfg.Logging.Level)
	if err != nil {
		return err
	}
	c.config = cfg
	c.logger = logger
	return nil
}

// Config returns the active configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the CLI logger
func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// FrameLimits returns the frame limits from the active configuration
func (c *Container) FrameLimits() frame.Limits {
	return frame.Limits{MaxFrameBytes: c.config.Codec.MaxFrameBytes}
}

// OpenCorpus opens the corpus store named by the configuration
func (c *Container) OpenCorpus() (*corpus.Store, error) {
	return c.corpusOpener(c.config.CorpusDir)
}

// SetLogOutput redirects log output (for testing)
func (c *Container) SetLogOutput(w io.Writer) {
	c.logOutput = w
}

// SetCorpusOpener allows overriding how the corpus is opened (for testing)
func (c *Container) SetCorpusOpener(opener CorpusOpener) {
	c.corpusOpener = opener
}
