package components

import (
	"slabstock/internal/handler"
	"slabstock/internal/handler/api"
	"slabstock/internal/handler/middleware"
	"slabstock/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewHoldHandler,
		api.NewAllocationHandler,
		api.NewStockHandler,
		api.NewLotHandler,
		api.NewPhotoHandler,
		NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthMiddleware(jwtService *jwt.Service) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtService)
}

func NewHandlers(
	auth *api.AuthHandler,
	hold *api.HoldHandler,
	allocation *api.AllocationHandler,
	stock *api.StockHandler,
	lot *api.LotHandler,
	photo *api.PhotoHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:       auth,
		Hold:       hold,
		Allocation: allocation,
		Stock:      stock,
		Lot:        lot,
		Photo:      photo,
	}
}
