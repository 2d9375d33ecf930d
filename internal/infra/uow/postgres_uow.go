package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"slabstock/internal/infra/db"
	"slabstock/internal/infra/readstore"
	"slabstock/internal/infra/repository"
	"slabstock/internal/pkg/errs"
	"slabstock/internal/usecase/shared"

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

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
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
	holdRepo      shared.HoldRepository
	stockUnitRepo shared.StockUnitRepository
	operationRepo shared.OperationRepository
	lotRepo       shared.LotRepository
	photoRepo     shared.PhotoRepository
	userRepo      shared.UserRepository
	commandReads  shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Holds() shared.HoldRepository {
	if t.holdRepo == nil {
		t.holdRepo = repository.NewHoldRepository()
	}
	return t.holdRepo
}

func (t *pgTx) StockUnits() shared.StockUnitRepository {
	if t.stockUnitRepo == nil {
		t.stockUnitRepo = repository.NewStockUnitRepository()
	}
	return t.stockUnitRepo
}

func (t *pgTx) Operations() shared.OperationRepository {
	if t.operationRepo == nil {
		t.operationRepo = repository.NewOperationRepository()
	}
	return t.operationRepo
}

func (t *pgTx) Lots() shared.LotRepository {
	if t.lotRepo == nil {
		t.lotRepo = repository.NewLotRepository()
	}
	return t.lotRepo
}

func (t *pgTx) Photos() shared.PhotoRepository {
	if t.photoRepo == nil {
		t.photoRepo = repository.NewPhotoRepository()
	}
	return t.photoRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository()
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

// commandReads runs snapshot lookups on whatever query surface it was
// bound to: the transaction inside Within, the pool outside.
type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	holdStore      *readstore.HoldReadStore
	stockUnitStore *readstore.StockUnitReadStore
	operationStore *readstore.OperationReadStore
	userStore      *readstore.UserReadStore
}

func (r *commandReads) holds() *readstore.HoldReadStore {
	if r.holdStore == nil {
		r.holdStore = readstore.NewHoldReadStore(r.dbtx)
	}
	return r.holdStore
}

func (r *commandReads) stockUnits() *readstore.StockUnitReadStore {
	if r.stockUnitStore == nil {
		r.stockUnitStore = readstore.NewStockUnitReadStore(r.dbtx)
	}
	return r.stockUnitStore
}

func (r *commandReads) operations() *readstore.OperationReadStore {
	if r.operationStore == nil {
		r.operationStore = readstore.NewOperationReadStore(r.dbtx)
	}
	return r.operationStore
}

func (r *commandReads) users() *readstore.UserReadStore {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore(r.dbtx)
	}
	return r.userStore
}

func (r *commandReads) StockUnitByID(ctx context.Context, id uuid.UUID) (*shared.StockUnitSnapshot, error) {
	return r.stockUnits().FindSnapshot(ctx, id)
}

func (r *commandReads) ActiveHoldByStockUnit(ctx context.Context, stockUnitID uuid.UUID) (*shared.ActiveHoldSnapshot, error) {
	return r.holds().ActiveHoldByStockUnit(ctx, stockUnitID)
}

func (r *commandReads) OperationByID(ctx context.Context, id uuid.UUID) (*shared.OperationSnapshot, error) {
	return r.operations().FindByID(ctx, id)
}

func (r *commandReads) BindingByID(ctx context.Context, id uuid.UUID) (*shared.BindingSnapshot, error) {
	return r.operations().FindBindingByID(ctx, id)
}

func (r *commandReads) BindingsByOperation(ctx context.Context, operationID uuid.UUID) ([]shared.BindingSnapshot, error) {
	return r.operations().ListBindings(ctx, operationID)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.users().FindByEmail(ctx, email)
}

func (r *commandReads) PartnerNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	return r.users().PartnerNameByID(ctx, id)
}
