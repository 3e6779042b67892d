package report

// Type selects which report artifacts the agent produces for a session.
type Type string

const (
	TypeCloud         Type = "cloud"
	TypeLocal         Type = "local"
	TypeCloudAndLocal Type = "cloud_and_local"
)

// Settings configures session reporting. Zero value means agent defaults
// with reporting enabled.
type Settings struct {
	ProjectName string `json:"projectName,omitempty" yaml:"project_name"`
	JobName     string `json:"jobName,omitempty" yaml:"job_name"`
	ReportType  Type   `json:"reportType,omitempty" yaml:"report_type"`

	// DisableReports suppresses all reporting for the session.
	DisableReports bool `json:"disableReports,omitempty" yaml:"disable_reports"`

	// DisableCommandReports suppresses automatic per-command entries. Set by
	// the framework integration guard when a companion listener takes over.
	DisableCommandReports bool `json:"-" yaml:"-"`

	// DisableAutoTestReports suppresses automatic pass/fail test entries.
	DisableAutoTestReports bool `json:"-" yaml:"-"`
}
