package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"studio-ledger/internal/handler/middleware"
	"studio-ledger/internal/pkg/config"
	"studio-ledger/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweepModule = fx.Module("sweep",
	fx.Invoke(
		StartExpirySweep,
	),
)

// StartExpirySweep runs the periodic job that expires lapsed all-access
// redemptions and clears the matching member flags.
func StartExpirySweep(lc fx.Lifecycle, cfg config.Config, redemptions commands.RedemptionCommands, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Ledger.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						expired, err := redemptions.ExpireLapsed(ctx)
						if err != nil {
							logger.Error("expiry sweep failed", "error", err)
							continue
						}
						middleware.ObserveSweep(expired)
						if expired > 0 {
							logger.Info("expiry sweep completed", "expired", expired)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
