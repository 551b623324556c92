package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"dpm-integrator/internal/core/domain"
	"dpm-integrator/internal/validation"
)

// Keys of the tool config document. Viper matches them case-insensitively.
const (
	keyToolName                = "dpmToolName"
	keyClientUsername          = "clientAuthBasic.username"
	keyClientPassword          = "clientAuthBasic.password"
	keyAuthServiceHost         = "serviceAddress.authServiceHost"
	keyHMRServiceHost          = "serviceAddress.hmrServiceHost"
	keyExportImportServiceHost = "serviceAddress.exportImportServiceHost"
)

var toolConfigRules = []validation.Rule[*viper.Viper]{
	{Field: keyToolName, Value: stringAt(keyToolName), Check: missingConfigValue},
	{Field: keyClientUsername, Value: stringAt(keyClientUsername), Check: missingConfigValue},
	{Field: keyClientPassword, Value: stringAt(keyClientPassword), Check: missingConfigValue},
	{Field: keyAuthServiceHost, Value: stringAt(keyAuthServiceHost), Check: missingConfigValue},
	{Field: keyHMRServiceHost, Value: stringAt(keyHMRServiceHost), Check: missingConfigValue},
	{Field: keyExportImportServiceHost, Value: stringAt(keyExportImportServiceHost), Check: missingConfigValue},
}

// LoadToolConfig reads the DPM tool config document at path. JSON is the
// native format; .yaml and .yml files are accepted as well. Every missing
// required field is reported.
func LoadToolConfig(path string) (*domain.ToolConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	default:
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read dpm tool config %s: %w", path, err)
	}

	if err := validation.Run(v, toolConfigRules); err != nil {
		return nil, err
	}

	return &domain.ToolConfig{
		DPMToolName: v.GetString(keyToolName),
		ClientAuthBasic: domain.ClientAuthBasic{
			Username: v.GetString(keyClientUsername),
			Password: v.GetString(keyClientPassword),
		},
		ServiceAddress: domain.ServiceAddress{
			AuthServiceHost:         strings.TrimRight(v.GetString(keyAuthServiceHost), "/"),
			HMRServiceHost:          strings.TrimRight(v.GetString(keyHMRServiceHost), "/"),
			ExportImportServiceHost: strings.TrimRight(v.GetString(keyExportImportServiceHost), "/"),
		},
	}, nil
}

func stringAt(key string) func(*viper.Viper) string {
	return func(v *viper.Viper) string {
		return strings.TrimSpace(v.GetString(key))
	}
}

func missingConfigValue(field, value string) *domain.ValidationError {
	if value == "" {
		return &domain.ValidationError{Field: "DpmToolConfig." + field, Problem: "no value"}
	}
	return nil
}
