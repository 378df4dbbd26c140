package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"uicss/config"
	"uicss/engine"
	"uicss/state"
)

// Generate is "generate" command action.
func Generate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}

	p, err := env.PreparePreset()
	if err != nil {
		return fmt.Errorf("unable to prepare preset: %w", err)
	}

	out := cmd.String("out")
	if len(out) > 0 {
		if out, err = filepath.Abs(out); err != nil {
			return err
		}
	}

	j := &job{
		sources: cmd.Args().Slice(),
		out:     out,
		stdout:  cmd.Root().Writer,
		conf:    env.Cfg.Generate,
		gen:     engine.New(p, env.Log),
		rpt:     env.Rpt,
		log:     log,
	}
	if cmd.Bool("watch") {
		return j.watch(ctx)
	}
	return j.run(ctx)
}

// job is a single generate invocation, in watch mode it runs repeatedly.
type job struct {
	sources []string
	// absolute, empty means stdout
	out    string
	stdout io.Writer
	conf   config.GenerateConfig
	gen    *engine.Generator
	rpt    *config.Report
	log    *zap.Logger
}

func (j *job) run(ctx context.Context) error {
	start := time.Now()

	files, err := collectSources(ctx, j.sources, j.conf.Extensions, j.log)
	if err != nil {
		return fmt.Errorf("unable to collect sources: %w", err)
	}
	// never read our own output
	files = slices.DeleteFunc(files, func(src source) bool { return src.path == j.out })
	if len(files) == 0 {
		j.log.Warn("Nothing to scan", zap.Strings("sources", j.sources), zap.Strings("extensions", j.conf.Extensions))
	}

	tokens, err := scanSources(ctx, files, j.conf.Extensions, j.conf.Workers, j.rpt, j.log)
	if err != nil {
		return fmt.Errorf("unable to scan sources: %w", err)
	}

	res, err := j.gen.Generate(ctx, tokens)
	if err != nil {
		return fmt.Errorf("unable to generate stylesheet: %w", err)
	}

	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err != nil {
		return err
	}
	if err := j.write(buf.Bytes()); err != nil {
		return err
	}

	if j.rpt != nil {
		j.rpt.StoreData("passes/"+res.ID.String()+".txt", []byte(res.Dump()))
	}
	if len(res.Unmatched) > 0 {
		j.log.Debug("Candidates not recognized", zap.Stringer("pass", res.ID), zap.Int("count", len(res.Unmatched)))
	}
	j.log.Info("Stylesheet generated",
		zap.Stringer("pass", res.ID),
		zap.Int("files", len(files)),
		zap.Int("utilities", len(res.Utilities)),
		zap.Int("properties", len(res.Properties)),
		zap.String("to", j.destination()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (j *job) destination() string {
	if len(j.out) == 0 {
		return "STDOUT"
	}
	return j.out
}

// write replaces destination atomically so watchers of the output never see
// partial stylesheet.
func (j *job) write(data []byte) error {
	j.rpt.StoreData("output/"+filepath.Base(j.destination()), data)

	if len(j.out) == 0 {
		if _, err := j.stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write stylesheet: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(j.out)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(j.out)+"-*")
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.out); err != nil {
		return fmt.Errorf("unable to replace destination file '%s': %w", j.out, err)
	}
	return nil
}
