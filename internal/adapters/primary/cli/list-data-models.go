package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dpm-integrator/internal/config"
	"dpm-integrator/internal/core/domain"
	"dpm-integrator/internal/core/services"
	"dpm-integrator/internal/validation"
)

func (a *App) listDataModelsCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list-data-models",
		Short: "List the data models of the DPM tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &listParams{
				commonParams: a.commonParams(opts),
				Output:       strings.ToLower(output),
			}
			if err := validation.Run(p, listRules(p.commonParams)); err != nil {
				return err
			}
			return a.listDataModels(cmd.Context(), p)
		},
	}
	cmd.Flags().StringVar(&output, "output", outputText, "output format: text, json or yaml")

	return cmd
}

func (a *App) listDataModels(ctx context.Context, p *listParams) error {
	logger := a.newLogger(p.Verbose)

	toolCfg, err := config.LoadToolConfig(p.ToolConfigPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.status, "Listing data models from: %s (config: %s)\n\n", toolCfg.DPMToolName, p.ToolConfigPath)

	client := a.newClient(toolCfg, logger)
	if err := a.authenticate(ctx, client, p.commonParams); err != nil {
		return err
	}

	fmt.Fprintln(a.status, "Retrieving data models list")
	models, err := services.NewDataModelService(client, logger).List(ctx)
	if err != nil {
		return err
	}

	return a.renderDataModels(models, p.Output)
}

func (a *App) renderDataModels(models []domain.DataModelInfo, format string) error {
	if models == nil {
		models = []domain.DataModelInfo{}
	}

	switch format {
	case outputJSON:
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	case outputYAML:
		enc := yaml.NewEncoder(a.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(models); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintln(a.Stdout, "Data models:")
	if len(models) == 0 {
		fmt.Fprintln(a.Stdout, "- None")
		return nil
	}
	for _, m := range models {
		fmt.Fprintf(a.Stdout, "- %s\n", m.Name)
	}
	return nil
}
