package cli

import (
	"strings"
	"time"

	"dpm-integrator/internal/validation"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type commonParams struct {
	ToolConfigPath      string
	toolConfigDefaulted bool
	Username            string
	Password            string
	Verbose             string
}

type listParams struct {
	commonParams
	Output string
}

type importParams struct {
	commonParams
	DatabasePath    string
	TargetDataModel string
	WaitTimeout     time.Duration
}

func (a *App) commonParams(opts *globalOptions) commonParams {
	p := commonParams{
		ToolConfigPath: opts.toolConfig,
		Username:       opts.username,
		Password:       opts.password,
		Verbose:        strings.ToUpper(opts.verbose),
	}
	if p.ToolConfigPath == "" {
		p.ToolConfigPath = a.DefaultToolConfig
		p.toolConfigDefaulted = true
	}
	return p
}

func (p commonParams) toolConfigField() string {
	if p.toolConfigDefaulted {
		return "dpm-tool-config (default configuration)"
	}
	return "dpm-tool-config"
}

func commonRules[T any](c commonParams, get func(T) commonParams) []validation.Rule[T] {
	return []validation.Rule[T]{
		{Field: c.toolConfigField(), Value: func(t T) string { return get(t).ToolConfigPath }, Check: validation.ExistingFile},
		{Field: "username", Value: func(t T) string { return get(t).Username }, Check: validation.Required},
		{Field: "verbose", Value: func(t T) string { return get(t).Verbose }, Check: validation.OneOf(verboseNone, verboseInfo, verboseDebug, verboseTrace)},
	}
}

func listRules(c commonParams) []validation.Rule[*listParams] {
	rules := commonRules(c, func(p *listParams) commonParams { return p.commonParams })
	return append(rules, validation.Rule[*listParams]{
		Field: "output",
		Value: func(p *listParams) string { return p.Output },
		Check: validation.OneOf(outputText, outputJSON, outputYAML),
	})
}

func importRules(c commonParams) []validation.Rule[*importParams] {
	rules := []validation.Rule[*importParams]{
		{Field: "db-file", Value: func(p *importParams) string { return p.DatabasePath }, Check: validation.ExistingFile},
		{Field: "target-data-model", Value: func(p *importParams) string { return p.TargetDataModel }, Check: validation.Required},
	}
	return append(rules, commonRules(c, func(p *importParams) commonParams { return p.commonParams })...)
}
