package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/agentbridge/pkg/report"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// Environment variables consulted when options are left empty.
const (
	EnvVarRemoteAddress  = "AGENTBRIDGE_URL"
	EnvVarToken          = "AGENTBRIDGE_TOKEN"
	EnvVarProject        = "AGENTBRIDGE_PROJECT"
	EnvVarJob            = "AGENTBRIDGE_JOB"
	EnvVarDisableReports = "AGENTBRIDGE_DISABLE_REPORTS"
)

// DefaultRemoteAddress is used when neither options nor environment name an
// agent endpoint.
const DefaultRemoteAddress = "http://127.0.0.1:8585"

// Options is the caller-supplied bridge configuration. All fields are
// optional; empty fields fall back to environment defaults.
type Options struct {
	RemoteAddress  string                 `yaml:"remote_address"`
	Token          string                 `yaml:"token"`
	Capabilities   webdriver.Capabilities `yaml:"capabilities"`
	Report         report.Settings        `yaml:"report"`
	DisableReports bool                   `yaml:"disable_reports"`
}

// EnvRemoteAddress resolves the agent endpoint from the environment.
func EnvRemoteAddress() string {
	if v := strings.TrimSpace(os.Getenv(EnvVarRemoteAddress)); v != "" {
		return v
	}
	return DefaultRemoteAddress
}

// EnvToken resolves the access token from the environment.
func EnvToken() string {
	return strings.TrimSpace(os.Getenv(EnvVarToken))
}

// FromEnv builds options from environment variables alone.
func FromEnv() Options {
	disable, _ := strconv.ParseBool(os.Getenv(EnvVarDisableReports))
	return Options{
		RemoteAddress: EnvRemoteAddress(),
		Token:         EnvToken(),
		Report: report.Settings{
			ProjectName: os.Getenv(EnvVarProject),
			JobName:     os.Getenv(EnvVarJob),
		},
		DisableReports: disable,
	}
}

// LoadFromFile reads options from a YAML file, filling empty fields from the
// environment.
func LoadFromFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse config: %w", err)
	}
	return opts.withEnvDefaults(), nil
}

func (o Options) withEnvDefaults() Options {
	if o.RemoteAddress == "" {
		o.RemoteAddress = EnvRemoteAddress()
	}
	if o.Token == "" {
		o.Token = EnvToken()
	}
	if o.Report.ProjectName == "" {
		o.Report.ProjectName = os.Getenv(EnvVarProject)
	}
	if o.Report.JobName == "" {
		o.Report.JobName = os.Getenv(EnvVarJob)
	}
	return o
}

// Validate rejects option combinations the agent cannot serve.
func (o Options) Validate() error {
	if !strings.HasPrefix(o.RemoteAddress, "http://") && !strings.HasPrefix(o.RemoteAddress, "https://") {
		return fmt.Errorf("remote address %q must be an http(s) URL", o.RemoteAddress)
	}
	switch o.Report.ReportType {
	case "", report.TypeCloud, report.TypeLocal, report.TypeCloudAndLocal:
	default:
		return fmt.Errorf("unknown report type %q", o.Report.ReportType)
	}
	return nil
}
