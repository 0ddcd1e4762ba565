package hold

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий временных блокировок слотов (holds)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория holds
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает hold с токеном и временем истечения
func (r *Repository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_holds").
		Columns(
			"token",
			"barber_id",
			"hold_date",
			"start_time",
			"end_time",
			"expires_at",
		).
		Values(
			h.Token,
			h.BarberID,
			h.HoldDate,
			h.StartTime,
			h.EndTime,
			h.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	return h, nil
}

// ListActive получает непротухшие holds барбера внутри диапазона дат.
// Истечение проверяется относительно переданного now, а не NOW() базы,
// чтобы чтение было согласовано с остальным расчетом доступности.
func (r *Repository) ListActive(ctx context.Context, barberID int64, from, to time.Time, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"token",
		"barber_id",
		"hold_date",
		"start_time",
		"end_time",
		"expires_at",
		"created_at",
	).
		From("slot_holds").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.GtOrEq{"hold_date": from}).
		Where(squirrel.LtOrEq{"hold_date": to}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("hold_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		var h domain.Hold
		var createdAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&h.Token,
			&h.BarberID,
			&h.HoldDate,
			&h.StartTime,
			&h.EndTime,
			&h.ExpiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		h.CreatedAt = createdAt.Time
		holds = append(holds, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// DeleteByToken удаляет hold по токену. Отсутствие строки не считается
// ошибкой: hold мог протухнуть и быть удален джобой очистки.
func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByToken - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет протухшие holds, возвращает число удаленных строк.
// Вызывается фоновой джобой очистки.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
