package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/agentbridge/pkg/report"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVarRemoteAddress, "http://agent.internal:9000")
	t.Setenv(EnvVarToken, "tok-123")
	t.Setenv(EnvVarProject, "checkout")
	t.Setenv(EnvVarJob, "smoke")
	t.Setenv(EnvVarDisableReports, "true")

	opts := FromEnv()
	assert.Equal(t, "http://agent.internal:9000", opts.RemoteAddress)
	assert.Equal(t, "tok-123", opts.Token)
	assert.Equal(t, "checkout", opts.Report.ProjectName)
	assert.Equal(t, "smoke", opts.Report.JobName)
	assert.True(t, opts.DisableReports)
}

func TestEnvRemoteAddressDefault(t *testing.T) {
	t.Setenv(EnvVarRemoteAddress, "")
	assert.Equal(t, DefaultRemoteAddress, EnvRemoteAddress())
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(EnvVarRemoteAddress, "")
	t.Setenv(EnvVarToken, "env-token")

	path := filepath.Join(t.TempDir(), "bridge.yaml")
	data := []byte(`
remote_address: http://localhost:7000
capabilities:
  browserName: chrome
report:
  project_name: storefront
  report_type: cloud
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	opts, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7000", opts.RemoteAddress)
	assert.Equal(t, "env-token", opts.Token, "empty fields fall back to environment")
	assert.Equal(t, "chrome", opts.Capabilities["browserName"])
	assert.Equal(t, report.TypeCloud, opts.Report.ReportType)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "valid http",
			opts: Options{RemoteAddress: "http://localhost:8585"},
		},
		{
			name: "valid https with report type",
			opts: Options{
				RemoteAddress: "https://agent.example.com",
				Report:        report.Settings{ReportType: report.TypeCloudAndLocal},
			},
		},
		{
			name:    "not a url",
			opts:    Options{RemoteAddress: "agent.example.com:8585"},
			wantErr: true,
		},
		{
			name: "unknown report type",
			opts: Options{
				RemoteAddress: "http://localhost:8585",
				Report:        report.Settings{ReportType: "pdf"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
