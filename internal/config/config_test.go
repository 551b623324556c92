package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpm-integrator/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.Polling.Interval)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ConnectTimeout)
	assert.Equal(t, 360*time.Second, cfg.HTTP.ResponseTimeout)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DPM_INTEGRATOR_POLL_INTERVAL", "100ms")
	t.Setenv("DPM_INTEGRATOR_LOGGER_FORMAT", "json")
	t.Setenv("DPM_INTEGRATOR_HTTP_CONNECT_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Polling.Interval)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ConnectTimeout)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadToolConfig_JSON(t *testing.T) {
	path := writeFile(t, "tool.json", `{
		"dpmToolName": "Atome Matter",
		"clientAuthBasic": {"username": "client", "password": "secret"},
		"serviceAddress": {
			"authServiceHost": "https://auth.example.com/",
			"hmrServiceHost": "https://hmr.example.com",
			"exportImportServiceHost": "https://import.example.com"
		},
		"unrelated": true
	}`)

	cfg, err := LoadToolConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Atome Matter", cfg.DPMToolName)
	assert.Equal(t, "client", cfg.ClientAuthBasic.Username)
	assert.Equal(t, "secret", cfg.ClientAuthBasic.Password)
	assert.Equal(t, "https://auth.example.com", cfg.ServiceAddress.AuthServiceHost)
	assert.Equal(t, "https://hmr.example.com", cfg.ServiceAddress.HMRServiceHost)
	assert.Equal(t, "https://import.example.com", cfg.ServiceAddress.ExportImportServiceHost)
}

func TestLoadToolConfig_YAML(t *testing.T) {
	path := writeFile(t, "tool.yaml", `
dpmToolName: Local
clientAuthBasic:
  username: client
  password: secret
serviceAddress:
  authServiceHost: http://localhost:1
  hmrServiceHost: http://localhost:2
  exportImportServiceHost: http://localhost:3
`)

	cfg, err := LoadToolConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Local", cfg.DPMToolName)
	assert.Equal(t, "http://localhost:3", cfg.ServiceAddress.ExportImportServiceHost)
}

func TestLoadToolConfig_ReportsEveryMissingField(t *testing.T) {
	path := writeFile(t, "tool.json", `{
		"clientAuthBasic": {"username": "client"},
		"serviceAddress": {"hmrServiceHost": "https://hmr.example.com"}
	}`)

	_, err := LoadToolConfig(path)
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	var fields []string
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{
		"DpmToolConfig.dpmToolName",
		"DpmToolConfig.clientAuthBasic.password",
		"DpmToolConfig.serviceAddress.authServiceHost",
		"DpmToolConfig.serviceAddress.exportImportServiceHost",
	}, fields)
}

func TestLoadToolConfig_Malformed(t *testing.T) {
	path := writeFile(t, "tool.json", `{"dpmToolName": `)

	_, err := LoadToolConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dpm tool config")
}
