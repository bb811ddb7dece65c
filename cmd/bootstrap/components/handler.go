package components

import (
	"studio-ledger/internal/handler"
	"studio-ledger/internal/handler/api"
	"studio-ledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRedemptionHandler,
		api.NewLedgerHandler,
		api.NewUsageHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
