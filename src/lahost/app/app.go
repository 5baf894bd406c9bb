// Package app assembles the lahost daemon from its Fx modules.
package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally"
	"go.uber.org/fx"

	"github.com/polder-ide/lahost/src/lahost/controller/commands"
	"github.com/polder-ide/lahost/src/lahost/controller/health"
	"github.com/polder-ide/lahost/src/lahost/controller/lifecycle"
	"github.com/polder-ide/lahost/src/lahost/gateway/editor"
	lahostdaemon "github.com/polder-ide/lahost/src/lahost/handler/lahost-daemon"
	"github.com/polder-ide/lahost/src/lahost/internal/bootstrap"
	"github.com/polder-ide/lahost/src/lahost/internal/clock"
	"github.com/polder-ide/lahost/src/lahost/internal/core"
	"github.com/polder-ide/lahost/src/lahost/internal/executor"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"github.com/polder-ide/lahost/src/lahost/internal/jsonrpcfx"
	"github.com/polder-ide/lahost/src/lahost/internal/launcher"
	"github.com/polder-ide/lahost/src/lahost/internal/serverinfo"
	"github.com/polder-ide/lahost/src/lahost/internal/serverlog"
	"github.com/polder-ide/lahost/src/lahost/internal/watcher"
	"github.com/polder-ide/lahost/src/lahost/repository/state"
)

// Module defines the lahost daemon application module.
var Module = fx.Options(
	editor.Module, // outbound to the editor front-end
	lahostdaemon.Module,
	jsonrpcfx.Module,
	lifecycle.Module,
	health.Module,
	commands.Module,
	bootstrap.Module,
	launcher.Module,
	watcher.Module,
	serverinfo.Module,
	serverlog.Module,
	state.Module,
	fs.Module,
	executor.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(clock.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "lahost-daemon",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateConfigProvider),
)
