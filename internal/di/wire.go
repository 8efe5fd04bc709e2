//go:build wireinject
// +build wireinject

package di

import (
	"TrendBoard/pkg/config"
	"TrendBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideInstrumentStore,
		ProvideEngine,
		ProvideCache,
		ProvideInstrumentsHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
