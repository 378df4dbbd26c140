package compile

import (
	"context"
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"uicss/preset"
	"uicss/state"
)

// Utilities is "utilities" command action.
func Utilities(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	p, err := env.PreparePreset()
	if err != nil {
		return fmt.Errorf("unable to prepare preset: %w", err)
	}
	n, err := listUtilities(cmd.Root().Writer, p, cmd.Bool("templates"))
	if err != nil {
		return fmt.Errorf("unable to list utilities: %w", err)
	}
	env.Log.Named("utilities").Debug("Utilities listed", zap.Int("count", n))
	return nil
}

// listUtilities writes one token (or template) per line.
func listUtilities(w io.Writer, p *preset.Preset, templates bool) (int, error) {
	list := p.Utilities()
	if templates {
		list = p.Autocomplete()
	}
	if len(list) == 0 {
		return 0, nil
	}
	_, err := io.WriteString(w, strings.Join(list, "\n")+"\n")
	return len(list), err
}
