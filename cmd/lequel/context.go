package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cognicore/lequel/internal/logging"
	"github.com/cognicore/lequel/pkg/lequel/config"
)

type globalFlags struct {
	config    string
	dataDir   string
	database  string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.dataDir != "" {
			cfg.DataDir = c.flags.dataDir
		}
		if c.flags.database != "" {
			cfg.Database = c.flags.database
		}
		if c.flags.logLevel != "" {
			cfg.Log.Level = c.flags.logLevel
		}
		if c.flags.logFormat != "" {
			cfg.Log.Format = c.flags.logFormat
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}

		logger, err := logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) log() *slog.Logger {
	if _, err := c.ensureConfig(); err != nil || c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}
