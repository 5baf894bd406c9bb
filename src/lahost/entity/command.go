package entity

// Command identifiers exposed to the editor front-end. The set of registered
// commands is fixed at daemon startup; only the bound handler changes as the
// server lifecycle moves between running and stopped.
const (
	CommandStartServer       = "lahost.startServer"
	CommandStopServer        = "lahost.stopServer"
	CommandRestartServer     = "lahost.restartServer"
	CommandOpenLogs          = "lahost.openLogs"
	CommandToggleCheckOnSave = "lahost.toggleCheckOnSave"
	CommandReloadWorkspace   = "lahost.reloadWorkspace"
	CommandRebuildDeps       = "lahost.rebuildDeps"
	CommandVersionInfo       = "lahost.versionInfo"
)

// AllCommands lists every command in registration order.
func AllCommands() []string {
	return []string{
		CommandStartServer,
		CommandStopServer,
		CommandRestartServer,
		CommandOpenLogs,
		CommandToggleCheckOnSave,
		CommandReloadWorkspace,
		CommandRebuildDeps,
		CommandVersionInfo,
	}
}
