package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, опции и связки барбер-услуга
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"base_price",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.BasePrice,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// GetOption получает опцию услуги по ID с проверкой принадлежности услуге
func (r *Repository) GetOption(ctx context.Context, serviceID, optionID int64) (*domain.ServiceOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_minutes",
		"price_adjustment",
	).
		From("service_options").
		Where(squirrel.Eq{"id": optionID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOption - build select query: %v", ErrBuildQuery, err)
	}

	var opt domain.ServiceOption

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&opt.ID,
		&opt.ServiceID,
		&opt.Name,
		&opt.DurationMinutes,
		&opt.PriceAdjustment,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOption - scan option: %v", ErrScanRow, err)
	}

	return &opt, nil
}

// GetBarberService получает связку барбер-услуга с флагом активности
// и персональной ценой барбера
func (r *Repository) GetBarberService(ctx context.Context, barberID, serviceID int64) (*domain.BarberService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"barber_id",
		"service_id",
		"active",
		"price",
	).
		From("barber_services").
		Where(squirrel.Eq{"barber_id": barberID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberService - build select query: %v", ErrBuildQuery, err)
	}

	var link domain.BarberService

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.BarberID,
		&link.ServiceID,
		&link.Active,
		&link.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberService - scan link: %v", ErrScanRow, err)
	}

	return &link, nil
}
