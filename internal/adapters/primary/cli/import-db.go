package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dpm-integrator/internal/config"
	"dpm-integrator/internal/core/services"
	"dpm-integrator/internal/validation"
)

func (a *App) importDBCommand(opts *globalOptions) *cobra.Command {
	var (
		target      string
		waitTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import-db-to-existing-model <db-file>",
		Short: "Import a database file into the latest version of an existing data model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &importParams{
				commonParams:    a.commonParams(opts),
				TargetDataModel: target,
				WaitTimeout:     waitTimeout,
			}
			if len(args) == 1 {
				p.DatabasePath = args[0]
			}
			if err := validation.Run(p, importRules(p.commonParams)); err != nil {
				return err
			}
			if abs, err := filepath.Abs(p.DatabasePath); err == nil {
				p.DatabasePath = abs
			}
			return a.importDB(cmd.Context(), p)
		},
	}
	cmd.Flags().StringVar(&target, "target-data-model", "", "name of the data model receiving the import")
	cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 0, "stop waiting for the import after this long (0 waits until it ends)")

	return cmd
}

func (a *App) importDB(ctx context.Context, p *importParams) error {
	logger := a.newLogger(p.Verbose)

	toolCfg, err := config.LoadToolConfig(p.ToolConfigPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.status, "Importing database to: %s\n\n", toolCfg.DPMToolName)

	client := a.newClient(toolCfg, logger)
	if err := a.authenticate(ctx, client, p.commonParams); err != nil {
		return err
	}

	fmt.Fprintf(a.status, "Selecting target data model: %s\n", p.TargetDataModel)
	target, err := services.NewDataModelService(client, logger).SelectTargetVersion(ctx, p.TargetDataModel)
	if err != nil {
		return err
	}

	opts := []services.ImportOption{
		services.WithPollInterval(a.Settings.Polling.Interval),
		services.WithWaitTimeout(p.WaitTimeout),
		services.WithLogger(logger),
		services.WithObserver(services.ImportObserver{
			Waiting: func() { fmt.Fprint(a.status, "..") },
			UploadAccepted: func(string) {
				fmt.Fprint(a.status, "\nWaiting import to complete ")
			},
		}),
	}
	if a.Clock != nil {
		opts = append(opts, services.WithClock(a.Clock))
	}

	fmt.Fprintf(a.status, "Uploading database file: %s ", p.DatabasePath)
	_, err = services.NewImportService(client, opts...).SubmitAndAwait(ctx, p.DatabasePath, target)
	fmt.Fprintln(a.status)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.status, "Database import done")
	return nil
}
