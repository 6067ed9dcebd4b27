package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/kpi5/theinternet-e2e/internal/cli"
	"github.com/kpi5/theinternet-e2e/internal/config"
	"github.com/kpi5/theinternet-e2e/internal/preflight"
	"github.com/kpi5/theinternet-e2e/internal/scenarios"
	"github.com/kpi5/theinternet-e2e/internal/site"
)

var version = "0.1.0"

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// resolveRun layers defaults, the suite file, the environment and flags
func resolveRun(c *cli.Context) (config.Resolved, error) {
	path := c.String("config")
	file, err := config.LoadSuiteFile(path, !c.IsSet("config"))
	if err != nil {
		return config.Resolved{}, err
	}
	resolved, err := file.Resolve(os.Getenv)
	if err != nil {
		return config.Resolved{}, err
	}

	if c.IsSet("base-url") {
		if resolved.Target, err = config.NewTargetConfig(c.String("base-url")); err != nil {
			return config.Resolved{}, err
		}
	}
	if c.IsSet("browser") {
		resolved.Session.Browser = c.String("browser")
	}
	if c.Bool("headed") {
		resolved.Session.Headless = false
	}
	if c.IsSet("implicit-wait") {
		resolved.Session.ImplicitWait = c.Duration("implicit-wait")
	}
	if only := c.StringSlice("only"); len(only) > 0 {
		resolved.Only = only
	}
	return resolved, resolved.Session.Validate()
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the scenarios and the page each one opens",
		Flags: []cli.Flag{configFlag, baseURLFlag},
		Action: func(c *cli.Context) error {
			resolved, err := resolveRun(c)
			if err != nil {
				return err
			}
			list, err := scenarios.Filter(resolved.Only)
			if err != nil {
				return err
			}
			internalcli.RunList(c.App.Writer, list, resolved.Target)
			return nil
		},
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run scenarios against the target site",
		Flags: []cli.Flag{
			configFlag,
			baseURLFlag,
			&cli.StringSliceFlag{Name: "only", Usage: "run only the named scenarios"},
			&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
			&cli.DurationFlag{Name: "implicit-wait", Usage: "how long element lookups wait"},
			&cli.BoolFlag{Name: "record", Usage: "store results in PostgreSQL", EnvVars: []string{"E2E_RECORD"}},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			resolved, err := resolveRun(c)
			if err != nil {
				return err
			}
			list, err := scenarios.Filter(resolved.Only)
			if err != nil {
				return err
			}

			deps := internalcli.RunDependencies{
				Target:    resolved.Target,
				Session:   resolved.Session,
				Scenarios: list,
				Logger:    logger,
				Out:       c.App.Writer,
			}

			var store *internalcli.ResultStore
			if c.Bool("record") {
				pgConfig, err := config.LoadPostgresConfig(os.Getenv)
				if err != nil {
					return fmt.Errorf("missing required database configuration: %w", err)
				}
				store, err = internalcli.OpenResultStore(pgConfig, resolved.Target.BaseURL)
				if err != nil {
					return err
				}
				deps.Sink = store
				logger.Info("Recording run", zap.String("run_id", store.Run().ID))
			}

			_, runErr := internalcli.RunSuite(deps)
			if store != nil {
				if err := store.Close(); err != nil {
					logger.Error("Failed to finish recorded run", zap.Error(err))
				}
			}
			if errors.Is(runErr, internalcli.ErrScenariosFailed) {
				return cli.Exit(runErr.Error(), 1)
			}
			return runErr
		},
	}
}

// CheckCommand returns the check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify over HTTP that every scenario page serves its starting elements",
		Flags: []cli.Flag{configFlag, baseURLFlag, &cli.StringSliceFlag{Name: "only", Usage: "check only the named scenarios"}},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			resolved, err := resolveRun(c)
			if err != nil {
				return err
			}
			list, err := scenarios.Filter(resolved.Only)
			if err != nil {
				return err
			}

			checker := preflight.New(nil, resolved.Target, logger)
			if err := internalcli.RunCheck(c.Context, checker, list, c.App.Writer); err != nil {
				if errors.Is(err, internalcli.ErrPagesNotReady) {
					return cli.Exit(err.Error(), 1)
				}
				return err
			}
			return nil
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a local stand-in for the target site",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (default $PORT or 7080)"},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			serverConfig := config.LoadServerConfig(os.Getenv)
			if c.IsSet("port") {
				serverConfig.Port = c.String("port")
			}

			router, err := site.NewRouter(logger)
			if err != nil {
				return fmt.Errorf("failed to build site: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: serverConfig,
				Handler:      router,
				Logger:       logger,
			})
		},
	}
}

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "suite file",
		Value: config.DefaultSuiteFile,
	}
	baseURLFlag = &cli.StringFlag{
		Name:    "base-url",
		Usage:   "site under test",
		EnvVars: []string{"E2E_BASE_URL"},
	}
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	app := &cli.App{
		Name:    "theinternet",
		Usage:   "Browser scenarios for the-internet test site",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "development logging"},
		},
		Commands: []*cli.Command{
			ListCommand(),
			RunCommand(),
			CheckCommand(),
			ServeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
