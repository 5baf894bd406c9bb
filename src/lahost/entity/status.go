package entity

// Health is the coarse health value reported by the analysis server.
type Health int

const (
	// HealthStopped means no server is running.
	HealthStopped Health = iota
	// HealthOK means the server is running with no reported problems.
	HealthOK
	// HealthWarning means the server is running in a degraded mode.
	HealthWarning
	// HealthError means the server reported a failure.
	HealthError
)

// String implements fmt.Stringer.
func (h Health) String() string {
	switch h {
	case HealthStopped:
		return "stopped"
	case HealthOK:
		return "ok"
	case HealthWarning:
		return "warning"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}

// HealthStatus is the last-known status of the supervised server.
// Quiescent reports whether the server has finished its current background
// work; false overrides any icon with a busy indicator when rendered.
type HealthStatus struct {
	Health    Health `json:"health"`
	Quiescent bool   `json:"quiescent"`
	Message   string `json:"message,omitempty"`
}

// StoppedStatus is the status rendered whenever no server instance is live.
func StoppedStatus() HealthStatus {
	return HealthStatus{Health: HealthStopped, Quiescent: true}
}

// Severity is the status-bar decoration level derived from a HealthStatus.
type Severity int

const (
	// SeverityNone renders a neutral status item.
	SeverityNone Severity = iota
	// SeverityWarning renders the warning background color.
	SeverityWarning
	// SeverityError renders the error background color.
	SeverityError
)

// VersionInfo carries the version strings shown in the status tooltip.
type VersionInfo struct {
	Host     string `json:"host"`
	Server   string `json:"server,omitempty"`
	Toolchain string `json:"toolchain,omitempty"`
}

// StatusRender is the fully derived, renderable status-bar summary sent to
// the editor front-end. It has no behavior of its own; the editor draws it.
type StatusRender struct {
	Text         string      `json:"text"`
	Icon         string      `json:"icon,omitempty"`
	Busy         bool        `json:"busy"`
	Severity     Severity    `json:"severity"`
	Tooltip      []string    `json:"tooltip,omitempty"`
	ClickCommand string      `json:"clickCommand,omitempty"`
	Menu         []string    `json:"menu,omitempty"`
	Versions     VersionInfo `json:"versions"`
}
