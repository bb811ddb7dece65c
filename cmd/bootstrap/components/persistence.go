package components

import (
	"studio-ledger/internal/infra/db"
	"studio-ledger/internal/infra/repository"
	"studio-ledger/internal/infra/uow"
	"studio-ledger/internal/usecase/queries"
	"studio-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			repository.NewLedgerViewRepository,
			fx.As(new(queries.LedgerViewRepo)),
		),
		fx.Annotate(
			repository.NewRedemptionViewRepository,
			fx.As(new(queries.RedemptionViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
