package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/buildprobe/buildprobe/pkg/cli/config"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
	"github.com/buildprobe/buildprobe/pkg/infra/recordstore"
	"github.com/buildprobe/buildprobe/pkg/usecase"
)

func cmdAnnotate() *cli.Command {
	var (
		inputCfg  config.Input
		githubCfg config.GitHub
	)

	flags := append(inputCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "annotate",
		Aliases: []string{"a"},
		Usage:   "Detect build systems of every listed repository and write the results back",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := slog.Default()
			logger.Info("Starting annotation",
				slog.String("file", inputCfg.File),
				slog.Any("github", githubCfg),
			)

			client, err := githubCfg.Configure(ctx, logger)
			if err != nil {
				return err
			}

			enricher := usecase.NewEnricher(client, usecase.WithEnrichLogger(logger))
			annotator := usecase.NewAnnotator(
				recordstore.NewYAMLStore(),
				client,
				enricher,
				usecase.WithAuthenticated(githubCfg.Authenticated()),
				usecase.WithAnnotateLogger(logger),
			)

			summary, err := annotator.Run(ctx, inputCfg.File)
			if err != nil {
				return goerr.Wrap(err, "annotation failed")
			}

			printAnnotateSummary(c.Root().Writer, inputCfg.File, summary)
			return nil
		},
	}
}

func printAnnotateSummary(w io.Writer, path string, s *model.BatchSummary) {
	_, _ = color.New(color.Bold).Fprintf(w, "Annotated %s\n", path)
	_, _ = fmt.Fprintf(w, "  total:       %d\n", s.Total)
	_, _ = color.New(color.FgGreen).Fprintf(w, "  enriched:    %d\n", s.Enriched)

	failed := color.New(color.Reset)
	if s.Failed > 0 {
		failed = color.New(color.FgRed)
	}
	_, _ = failed.Fprintf(w, "  failed:      %d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "  unsupported: %d\n", s.Unsupported)
	_, _ = fmt.Fprintf(w, "  skipped:     %d\n", s.Skipped)

	if s.QuotaWarning {
		_, _ = color.New(color.FgYellow).Fprintf(w,
			"warning: unauthenticated quota (%d) is below the estimated %d calls; set GITHUB_TOKEN\n",
			s.QuotaRemaining, s.QuotaEstimate)
	}
}
