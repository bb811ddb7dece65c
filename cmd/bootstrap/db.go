package bootstrap

import (
	"context"

	"studio-ledger/internal/infra/db"
	"studio-ledger/internal/pkg/config"
	"studio-ledger/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(
		RunMigrations,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// RunMigrations applies pending goose migrations on startup. The
// migration set is embedded, so the binary is self-contained.
func RunMigrations(cfg config.Config) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.DB.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations.FS)
	return goose.Up(sqlDB, ".")
}
