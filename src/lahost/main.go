package main

import (
	"go.uber.org/fx"

	"github.com/polder-ide/lahost/src/lahost/app"
)

const _version = "0.3.0"

func opts() fx.Option {
	return fx.Options(
		app.Module,
		fx.Provide(fx.Annotated{
			Name:   "hostVersion",
			Target: func() string { return _version },
		}),
	)
}

func main() {
	fx.New(opts()).Run()
}
