package fx

import (
	"tattletale/internal/api"
	"tattletale/internal/config"
	"tattletale/internal/database"
	"tattletale/internal/logger"
	"tattletale/internal/repository"
	"tattletale/internal/service"

	"go.uber.org/fx"
)

// Module wires the lookup stack. Commands must supply logger.Options; the
// grid needs logs off the terminal while other commands want stderr.
var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewHistoryRepository),
	// api client
	fx.Provide(api.New),
	// svc
	fx.Provide(service.NewPlayerService),
)
