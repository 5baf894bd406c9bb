package mapper

import (
	"fmt"

	"github.com/polder-ide/lahost/src/lahost/entity"
)

const (
	_iconStopped = "stop-circle"
	_iconWarning = "warning"
	_iconError   = "error"
)

// _statusMenu is the fixed action menu attached to every non-stopped status.
var _statusMenu = []string{
	entity.CommandOpenLogs,
	entity.CommandToggleCheckOnSave,
	entity.CommandReloadWorkspace,
	entity.CommandRebuildDeps,
	entity.CommandStopServer,
	entity.CommandRestartServer,
}

// StatusToRender derives the renderable status-bar summary from the
// last-known health status. The stopped variant suppresses all decoration
// other than the start affordance; every other variant carries the version
// block and the fixed action menu.
func StatusToRender(status entity.HealthStatus, versions entity.VersionInfo, bar entity.StatusBarConfig, serverName string) entity.StatusRender {
	if status.Health == entity.HealthStopped {
		return entity.StatusRender{
			Text:         fmt.Sprintf("%s stopped", serverName),
			Icon:         _iconStopped,
			ClickCommand: entity.CommandStartServer,
			Tooltip:      []string{"Server is stopped.", "Click to start."},
			Versions:     versions,
		}
	}

	render := entity.StatusRender{
		Text:     serverName,
		Versions: versions,
		Menu:     _statusMenu,
		Tooltip:  versionLines(versions),
	}

	switch status.Health {
	case entity.HealthOK:
		render.ClickCommand = clickCommand(bar)
	case entity.HealthWarning:
		render.Icon = _iconWarning
		render.Severity = entity.SeverityWarning
		render.ClickCommand = entity.CommandOpenLogs
	case entity.HealthError:
		render.Icon = _iconError
		render.Severity = entity.SeverityError
		render.ClickCommand = entity.CommandOpenLogs
	}

	if status.Message != "" {
		render.Tooltip = append(render.Tooltip, status.Message)
	}

	// A busy server overrides any icon with a spinner regardless of health.
	if !status.Quiescent {
		render.Busy = true
	}

	return render
}

func clickCommand(bar entity.StatusBarConfig) string {
	if bar.ClickAction == "stopServer" {
		return entity.CommandStopServer
	}
	return entity.CommandOpenLogs
}

func versionLines(versions entity.VersionInfo) []string {
	lines := []string{fmt.Sprintf("lahost %s", versions.Host)}
	if versions.Server != "" {
		lines = append(lines, fmt.Sprintf("server %s", versions.Server))
	}
	if versions.Toolchain != "" {
		lines = append(lines, fmt.Sprintf("toolchain %s", versions.Toolchain))
	}
	return lines
}
