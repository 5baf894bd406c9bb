package lifecycle

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/polder-ide/lahost/src/lahost/controller/commands"
	"github.com/polder-ide/lahost/src/lahost/entity"
)

// commandActions maps every editor command onto this controller.
func (c *controller) commandActions() map[string]commands.Action {
	return map[string]commands.Action{
		entity.CommandStartServer:       c.Start,
		entity.CommandStopServer:        c.Stop,
		entity.CommandRestartServer:     c.Restart,
		entity.CommandOpenLogs:          c.openLogs,
		entity.CommandToggleCheckOnSave: c.toggleCheckOnSave,
		entity.CommandReloadWorkspace:   c.reloadWorkspace,
		entity.CommandRebuildDeps:       c.rebuildDeps,
		entity.CommandVersionInfo:       c.versionInfo,
	}
}

func (c *controller) openLogs(ctx context.Context) error {
	return c.editor.OpenServerLog(ctx, c.serverLog.Path())
}

func (c *controller) versionInfo(ctx context.Context) error {
	c.mu.Lock()
	serverVersion := c.serverVersion
	c.mu.Unlock()

	if serverVersion == "" {
		serverVersion = "(server not started)"
	}
	return c.editor.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: fmt.Sprintf("lahost %s, %s", c.version, serverVersion),
	})
}

// toggleCheckOnSave flips the check-on-save setting and pushes it to the
// running server without a restart.
func (c *controller) toggleCheckOnSave(ctx context.Context) error {
	c.mu.Lock()
	c.checkOnSave = !c.checkOnSave
	enabled := c.checkOnSave
	h := c.handle
	c.mu.Unlock()

	if h != nil && h.Running() {
		err := h.Server().DidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
			Settings: map[string]interface{}{_settingCheckOnSave: enabled},
		})
		if err != nil {
			return err
		}
	}

	message := "Check on save disabled"
	if enabled {
		message = "Check on save enabled"
	}
	return c.editor.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: message,
	})
}

func (c *controller) reloadWorkspace(ctx context.Context) error {
	h, err := c.currentHandle()
	if err != nil {
		return err
	}
	return h.Request(ctx, _methodReloadWorkspace, nil, nil)
}

func (c *controller) rebuildDeps(ctx context.Context) error {
	h, err := c.currentHandle()
	if err != nil {
		return err
	}
	return h.Request(ctx, _methodRebuildDeps, nil, nil)
}
