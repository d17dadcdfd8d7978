package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/buildprobe/buildprobe/pkg/cli/config"
	"github.com/buildprobe/buildprobe/pkg/infra/recordstore"
	"github.com/buildprobe/buildprobe/pkg/usecase"
)

func cmdExport() *cli.Command {
	var (
		inputCfg  config.Input
		exportCfg config.Export
	)

	flags := append(inputCfg.Flags(), exportCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Write successfully annotated packages to a CSV file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := slog.Default()

			exporter := usecase.NewExporter(recordstore.NewYAMLStore(), recordstore.NewCSVWriter(), logger)
			table, err := exporter.Run(ctx, inputCfg.File, exportCfg.Output)
			if err != nil {
				return goerr.Wrap(err, "export failed")
			}

			_, _ = color.New(color.FgGreen).Fprintf(c.Root().Writer,
				"Exported %d packages (%d columns) to %s\n",
				len(table.Rows), len(table.Header), exportCfg.Output)
			return nil
		},
	}
}
