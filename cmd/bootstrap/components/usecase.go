package components

import (
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/config"
	"slabstock/internal/pkg/metrics"
	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"
	"slabstock/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewHoldCommands,
		commands.NewAllocationCommands,
		commands.NewLotCommands,
		commands.NewPhotoCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewHoldQueries,
		queries.NewAvailabilityQueries,
		queries.NewStockUnitQueries,
		queries.NewLotQueries,
		queries.NewUserQueries,
	),
)

func NewHoldCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, rec *metrics.Recorder) commands.HoldCommands {
	return commands.NewHoldCommands(uow, clk, cfg.Hold.Duration, rec)
}
