package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/coworking-lounge/zone-service/internal/domain"
	"github.com/coworking-lounge/zone-service/pkg/dbmetrics"
	"github.com/coworking-lounge/zone-service/pkg/psqlbuilder"
)

// Repository read-only доступ к каталогу: комнаты и тарифы.
// Ядро бронирования каталог не изменяет; записи ведёт админ-контур.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRoomByID получает комнату по ID
func (r *Repository) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "room_type", "capacity", "description").
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.Title,
		&room.Type,
		&room.Capacity,
		&room.Description,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - scan room: %v", ErrScanRow, err)
	}

	return &room, nil
}

// GetTariffByRoomType получает канонический тариф категории.
// UNIQUE-ограничение на room_type гарантирует не более одной строки,
// неоднозначного "первого совпадения" здесь быть не может.
func (r *Repository) GetTariffByRoomType(ctx context.Context, roomType domain.RoomType) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "room_type", "price_per_hour").
		From("tariffs").
		Where(squirrel.Eq{"room_type": roomType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTariffByRoomType - build select query: %v", ErrBuildQuery, err)
	}

	var tariff domain.Tariff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tariff.ID,
		&tariff.Title,
		&tariff.RoomType,
		&tariff.PricePerHour,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTariffByRoomType - scan tariff: %v", ErrScanRow, err)
	}

	return &tariff, nil
}
