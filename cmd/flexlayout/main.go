package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"flexlayout/pkg/config"
)

const appName = "flexlayout"

// initializeAppContext loads the configuration, applies command line
// overrides and prepares the logger once the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("width") {
		env.Cfg.Viewport.Width = cmd.Float("width")
	}
	if cmd.IsSet("height") {
		env.Cfg.Viewport.Height = cmd.Float("height")
	}
	if env.Cfg.Viewport.Width <= 0 || env.Cfg.Viewport.Height <= 0 {
		return ctx, fmt.Errorf("viewport must be positive, got %vx%v", env.Cfg.Viewport.Width, env.Cfg.Viewport.Height)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = "debug"
	}
	env.Log = env.Cfg.Logging.NewLogger(env.Err)

	env.Log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()))
	// Syncing a console writer fails on some platforms; there is nothing to
	// do about it.
	_ = env.Log.Sync()
	return nil
}

// errWasHandled is set once a subcommand error has been logged, so main
// does not report it a second time.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Cfg != nil && env.Cfg.Logging.Level != "none" {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// reported either by exitErrHandler or on exit directly to stderr
	return err
}

func newApp(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "lays out box trees with the CSS flexible box algorithm",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every layout pass"},
			&cli.FloatFlag{Name: "width", Usage: "viewport width in `PX` (overrides configuration)"},
			&cli.FloatFlag{Name: "height", Usage: "viewport height in `PX` (overrides configuration)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "layout",
				Usage:        "Lays out a box tree and prints the used geometry",
				OnUsageError: usageErrorHandler,
				Action:       runLayout,
				ArgsUsage:    "SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT` (text or yaml, overrides configuration)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to `FILE` instead of STDOUT"},
				},
			},
			{
				Name:         "render",
				Usage:        "Lays out a box tree and draws its boxes into a PNG file",
				OnUsageError: usageErrorHandler,
				Action:       runRender,
				ArgsUsage:    "SOURCE DESTINATION",
			},
			{
				Name:         "measure",
				Usage:        "Prints the min-content and max-content sizes of the root box",
				OnUsageError: usageErrorHandler,
				Action:       runMeasure,
				ArgsUsage:    "SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT` (text or yaml, overrides configuration)"},
				},
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background(), os.Stdout, os.Stderr), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
}
