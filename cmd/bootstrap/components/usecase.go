package components

import (
	"time"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/pkg/clock"
	"studio-ledger/internal/pkg/config"
	"studio-ledger/internal/usecase/commands"
	"studio-ledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	redemption.NewFactory,
	NewOrgLocale,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRedemptionCommands,
		commands.NewLedgerCommands,
		commands.NewUsageCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLedgerQueries,
		queries.NewRedemptionQueries,
	),
)

func NewOrgLocale(cfg config.Config) (commands.OrgLocale, error) {
	loc, err := time.LoadLocation(cfg.Ledger.DefaultTimeZone)
	if err != nil {
		return nil, err
	}
	return commands.NewFixedLocale(loc), nil
}
