package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"flexlayout/pkg/config"
	"flexlayout/pkg/dsl"
	"flexlayout/pkg/layout"
	"flexlayout/pkg/render"
	"flexlayout/pkg/text"
)

// loadTree parses and builds the box tree described in the file at path.
func loadTree(env *localEnv, path string) (*layout.Box, error) {
	if len(path) == 0 {
		return nil, errors.New("no SOURCE specified")
	}
	file, err := dsl.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse '%s': %w", path, err)
	}
	root, err := dsl.Build(file, dsl.BuildOptions{
		BaseDir:  filepath.Dir(path),
		FontSize: env.Cfg.Text.FontSize,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to build box tree from '%s': %w", path, err)
	}
	return root, nil
}

func newEngine(env *localEnv) (*layout.LayoutEngine, error) {
	opts := []layout.Option{layout.WithLogger(env.Log.Named("layout"))}
	if fontPath := env.Cfg.Text.FontPath; len(fontPath) > 0 {
		m, err := text.NewFontMeasurer(fontPath)
		if err != nil {
			return nil, fmt.Errorf("unable to prepare text measurement: %w", err)
		}
		opts = append(opts, layout.WithTextMeasurer(m))
	}
	return layout.NewLayoutEngine(env.Cfg.Viewport.Width, env.Cfg.Viewport.Height, opts...), nil
}

// layoutFile loads the tree in path and lays it out.
func layoutFile(env *localEnv, path string) (*layout.Box, *layout.Result, error) {
	root, err := loadTree(env, path)
	if err != nil {
		return nil, nil, err
	}
	engine, err := newEngine(env)
	if err != nil {
		return nil, nil, err
	}
	res, err := engine.Layout(root)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to lay out '%s': %w", path, err)
	}
	for _, u := range res.Unsupported {
		env.Log.Info("Fallback used", zap.String("feature", string(u.Feature)), zap.String("box", u.Box.DebugDescription()))
	}
	return root, res, nil
}

func outputFormat(env *localEnv, cmd *cli.Command) (string, error) {
	format := env.Cfg.Output.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}
	switch format {
	case "text", "yaml":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format '%s'", format)
}

func runLayout(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	format, err := outputFormat(env, cmd)
	if err != nil {
		return err
	}

	root, res, err := layoutFile(env, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	out := env.Out
	if fname := cmd.String("output"); len(fname) > 0 {
		f, cerr := os.Create(fname)
		if cerr != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, cerr)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	}
	return writeLayout(out, format, root, res.Unsupported)
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.Args().Len() != 2 {
		return errors.New("render needs SOURCE and DESTINATION")
	}
	root, _, err := layoutFile(env, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	var opts []render.Option
	if fontPath := env.Cfg.Text.FontPath; len(fontPath) > 0 {
		opts = append(opts, render.WithFont(fontPath))
	}
	r := render.NewRenderer(int(env.Cfg.Viewport.Width), int(env.Cfg.Viewport.Height), opts...)
	r.Render(root)

	fname := cmd.Args().Get(1)
	if err := r.SavePNG(fname); err != nil {
		return fmt.Errorf("unable to save '%s': %w", fname, err)
	}
	env.Log.Info("Rendered", zap.String("file", fname))
	return nil
}

func runMeasure(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	format, err := outputFormat(env, cmd)
	if err != nil {
		return err
	}
	root, err := loadTree(env, cmd.Args().Get(0))
	if err != nil {
		return err
	}
	engine, err := newEngine(env)
	if err != nil {
		return err
	}
	// Heights are measured at the viewport width.
	m, err := engine.Measure(root, layout.Definite(env.Cfg.Viewport.Width))
	if err != nil {
		return fmt.Errorf("unable to measure '%s': %w", cmd.Args().Get(0), err)
	}
	return writeMeasurement(env.Out, format, m)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	var (
		err   error
		data  []byte
		state string
	)
	if cmd.Bool("default") {
		state = "default"
		data = config.Prepare()
	} else {
		state = "actual"
		if data, err = config.Dump(env.Cfg); err != nil {
			return fmt.Errorf("unable to get configuration: %w", err)
		}
	}
	env.Log.Debug("Outputing configuration", zap.String("state", state))

	if _, err = env.Out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

