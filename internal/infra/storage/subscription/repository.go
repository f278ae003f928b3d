package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/coworking-lounge/zone-service/internal/domain"
	"github.com/coworking-lounge/zone-service/pkg/dbmetrics"
	"github.com/coworking-lounge/zone-service/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"user_id",
	"plan_id",
	"start_date",
	"end_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий подписок: тарифные планы и записи о покупках
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPlanByID получает тарифный план подписки
func (r *Repository) GetPlanByID(ctx context.Context, id int64) (*domain.SubscriptionPlan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "duration", "price").
		From("subscription_plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlanByID - build select query: %v", ErrBuildQuery, err)
	}

	var plan domain.SubscriptionPlan
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&plan.Title,
		&plan.Duration,
		&plan.Price,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlanByID - scan plan: %v", ErrScanRow, err)
	}

	return &plan, nil
}

// GetByID получает запись о подписке по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.UserSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("user_subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan subscription: %v", ErrScanRow, err)
	}

	return entry, nil
}

// GetActiveByUser получает действующую на дату at подписку пользователя.
// Внутри транзакции строка блокируется FOR UPDATE: решение "продлить или
// создать" должно быть сериализовано по пользователю.
func (r *Repository) GetActiveByUser(ctx context.Context, userID int64, at time.Time) (*domain.UserSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	date := domain.DateOnly(at)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("user_subscriptions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("end_date DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - scan subscription: %v", ErrScanRow, err)
	}

	return entry, nil
}

// Create создает новую запись о подписке
func (r *Repository) Create(ctx context.Context, entry *domain.UserSubscription) (*domain.UserSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_subscriptions").
		Columns("user_id", "plan_id", "start_date", "end_date").
		Values(entry.UserID, entry.PlanID, domain.DateOnly(entry.StartDate), domain.DateOnly(entry.EndDate)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// UpdateEndDate продлевает запись о подписке до новой даты окончания
func (r *Repository) UpdateEndDate(ctx context.Context, id int64, endDate time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("user_subscriptions").
		Set("end_date", domain.DateOnly(endDate)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateEndDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateEndDate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateEndDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// GetExpiredOn получает записи, истекшие ровно в указанную дату.
// Используется ежедневной рассылкой уведомлений об истечении.
func (r *Repository) GetExpiredOn(ctx context.Context, date time.Time) ([]*domain.UserSubscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("user_subscriptions").
		Where(squirrel.Eq{"end_date": domain.DateOnly(date)}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredOn - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredOn - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.UserSubscription, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetExpiredOn - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExpiredOn - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.UserSubscription, error) {
	var entry domain.UserSubscription
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.PlanID,
		&entry.StartDate,
		&entry.EndDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
