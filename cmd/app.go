// Package cmd holds the command line interface of interestsearch
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"interestsearch/internal/config"
	"interestsearch/internal/eventbus"
	"interestsearch/internal/logging"
	"interestsearch/internal/provider"
	"interestsearch/internal/search"
)

// NewApp creates the root command
func NewApp() *cli.Command {
	return &cli.Command{
		Name:           "interestsearch",
		Usage:          "Search interests with infinite scrolling",
		DefaultCommand: "tui",
		Flags:          GlobalFlags(),
		Commands: []*cli.Command{
			TUICommand(),
			QueryCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// GlobalFlags returns the flags shared by all commands. Each one can also be
// set through an INTERESTSEARCH_* environment variable.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Configuration file path",
			Value:   config.DefaultPath(),
			Sources: cli.EnvVars("INTERESTSEARCH_CONFIG"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Enable debug logging",
			Sources: cli.EnvVars("INTERESTSEARCH_DEBUG"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Log file path (default from config, then " + logging.DefaultFile + ")",
			Sources: cli.EnvVars("INTERESTSEARCH_LOG_FILE"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "Search endpoint URL",
			Sources: cli.EnvVars("INTERESTSEARCH_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Authorization header value",
			Sources: cli.EnvVars("INTERESTSEARCH_TOKEN"),
		},
		&cli.IntFlag{
			Name:    "page-size",
			Usage:   "Records per page",
			Sources: cli.EnvVars("INTERESTSEARCH_PAGE_SIZE"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Per-request timeout, 0 disables it",
			Sources: cli.EnvVars("INTERESTSEARCH_TIMEOUT"),
		},
	}
}

// env is what every command needs once flags and config are resolved
type env struct {
	cfg      *config.Config
	cfgSvc   config.ConfigService
	log      *logrus.Logger
	bus      eventbus.EventBus
	closeLog func() error
	unsub    func()
}

// setup loads the configuration, applies flag overrides, opens the log file
// and starts the event bus
func setup(c *cli.Command) (*env, error) {
	path := c.String("config")
	cfg, err := config.NewConfigServiceAt(path).Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := applyOverrides(c, cfg); err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if c.IsSet("log-file") {
		logPath = c.String("log-file")
	}
	log, closeLog, err := logging.Setup(logPath, c.Bool("debug"))
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(log)
	e := &env{
		cfg:      cfg,
		cfgSvc:   config.NewConfigServiceWithBus(path, bus),
		log:      log,
		bus:      bus,
		closeLog: closeLog,
		unsub:    subscribeAudit(bus, log),
	}

	bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Endpoint: cfg.Endpoint})
	log.WithFields(logrus.Fields{
		"config":    path,
		"endpoint":  cfg.Endpoint,
		"page_size": cfg.PageSize,
		"pid":       os.Getpid(),
	}).Info("starting")

	return e, nil
}

// Close flushes queued events to the audit log before closing it
func (e *env) Close() {
	e.bus.Close()
	e.unsub()
	_ = e.closeLog()
}

// applyOverrides copies explicitly set flags over file values
func applyOverrides(c *cli.Command, cfg *config.Config) error {
	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("token") {
		cfg.AuthToken = c.String("token")
	}
	if c.IsSet("page-size") {
		cfg.PageSize = int(c.Int("page-size"))
	}
	if c.IsSet("timeout") {
		cfg.Timeout = config.Duration{Duration: c.Duration("timeout")}
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	return cfg.Validate()
}

func (e *env) newProvider() (provider.Provider, error) {
	return provider.NewHTTPProvider(provider.Options{
		Endpoint:  e.cfg.Endpoint,
		AuthToken: e.cfg.AuthToken,
		Timeout:   e.cfg.Timeout.Duration,
		Logger:    e.log,
	})
}

func (e *env) newController() *search.Controller {
	return search.New(search.Options{
		PageSize: e.cfg.PageSize,
		Bus:      e.bus,
		Logger:   e.log,
	})
}

// withEnv wraps an action that needs the resolved environment
func withEnv(action func(ctx context.Context, c *cli.Command, e *env) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.Close()
		return action(ctx, c, e)
	}
}
