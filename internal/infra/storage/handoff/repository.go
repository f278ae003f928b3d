package handoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/coworking-lounge/zone-service/pkg/dbmetrics"
	"github.com/coworking-lounge/zone-service/pkg/psqlbuilder"
)

// PendingBooking валидированная бронь, ожидающая подтверждения оплаты.
// Интервал она не удерживает: при подтверждении конфликт проверяется заново.
type PendingBooking struct {
	ID             string // uuid, выдаётся при checkout
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	SubscriptionID *int64
	Amount         float64
	SessionID      string // идентификатор сессии платёжного шлюза
	CreatedAt      time.Time
}

// Repository репозиторий отложенных (ожидающих оплаты) броней
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отложенную бронь
func (r *Repository) Create(ctx context.Context, pending *PendingBooking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_handoffs").
		Columns("id", "user_id", "room_id", "start_time", "end_time", "subscription_id", "amount", "session_id").
		Values(
			pending.ID,
			pending.UserID,
			pending.RoomID,
			pending.StartTime,
			pending.EndTime,
			pending.SubscriptionID,
			pending.Amount,
			pending.SessionID,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&pending.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает отложенную бронь по идентификатору handoff-а
func (r *Repository) GetByID(ctx context.Context, id string) (*PendingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "user_id", "room_id", "start_time", "end_time", "subscription_id", "amount", "session_id", "created_at",
	).
		From("payment_handoffs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var pending PendingBooking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pending.ID,
		&pending.UserID,
		&pending.RoomID,
		&pending.StartTime,
		&pending.EndTime,
		&pending.SubscriptionID,
		&pending.Amount,
		&pending.SessionID,
		&pending.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrHandoffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan handoff: %v", ErrScanRow, err)
	}

	return &pending, nil
}

// Delete удаляет отложенную бронь (после успешного коммита)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payment_handoffs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHandoffNotFound
	}

	return nil
}
