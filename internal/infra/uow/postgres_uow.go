package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/domain/member"
	"studio-ledger/internal/infra/db"
	"studio-ledger/internal/infra/repository"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// row locks and conditional updates carry the stronger guarantees.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.Reads {
	return &reads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	memberRepo     shared.MemberRepository
	ledgerRepo     shared.LedgerRepository
	redemptionRepo shared.RedemptionRepository
	couponRepo     shared.CouponRepository
	dailyUsageRepo shared.DailyUsageRepository
	txReads        shared.Reads
}

func (t *pgTx) Members() shared.MemberRepository {
	if t.memberRepo == nil {
		t.memberRepo = repository.NewMemberRepository(t.dbtx)
	}
	return t.memberRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Redemptions() shared.RedemptionRepository {
	if t.redemptionRepo == nil {
		t.redemptionRepo = repository.NewRedemptionRepository(t.dbtx)
	}
	return t.redemptionRepo
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.couponRepo == nil {
		t.couponRepo = repository.NewCatalogRepository(t.dbtx)
	}
	return t.couponRepo
}

func (t *pgTx) DailyUsage() shared.DailyUsageRepository {
	if t.dailyUsageRepo == nil {
		t.dailyUsageRepo = repository.NewDailyUsageRepository(t.dbtx)
	}
	return t.dailyUsageRepo
}

func (t *pgTx) Reads() shared.Reads {
	if t.txReads == nil {
		t.txReads = &reads{dbtx: t.dbtx}
	}
	return t.txReads
}

type reads struct {
	dbtx db.DBTX

	memberRepo  *repository.MemberRepository
	catalogRepo *repository.CatalogRepository
}

func (r *reads) members() *repository.MemberRepository {
	if r.memberRepo == nil {
		r.memberRepo = repository.NewMemberRepository(r.dbtx)
	}
	return r.memberRepo
}

func (r *reads) catalog() *repository.CatalogRepository {
	if r.catalogRepo == nil {
		r.catalogRepo = repository.NewCatalogRepository(r.dbtx)
	}
	return r.catalogRepo
}

func (r *reads) MemberByID(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error) {
	return r.members().FindByID(ctx, orgID, memberID)
}

func (r *reads) PackageByID(ctx context.Context, orgID, packageID uuid.UUID) (*catalog.Package, error) {
	return r.catalog().FindPackageByID(ctx, orgID, packageID)
}

func (r *reads) CouponByID(ctx context.Context, orgID, couponID uuid.UUID) (*catalog.Coupon, error) {
	return r.catalog().FindCouponByID(ctx, orgID, couponID)
}

func (r *reads) CouponByCode(ctx context.Context, orgID uuid.UUID, code string) (*catalog.Coupon, error) {
	return r.catalog().FindCouponByCode(ctx, orgID, code)
}
