package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// bookingColumns колонки выборки бронирования вместе с длительностью
// выбранной опции услуги. Длительность подтягивается одним JOIN-ом на
// весь диапазон, вместо отдельного запроса на каждое бронирование.
var bookingColumns = []string{
	"b.id",
	"b.client_id",
	"b.barber_id",
	"b.service_id",
	"b.option_id",
	"b.booking_date",
	"b.start_time",
	"b.status",
	"b.price",
	"b.notes",
	"b.cancellation_reason",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
	"o.duration_minutes",
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её —
// путь создания всегда вызывается внутри сериализуемой транзакции
// вместе с повторной проверкой занятости слота.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"barber_id",
			"service_id",
			"option_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"price",
			"notes",
		).
		Values(
			b.ClientID,
			b.BarberID,
			b.ServiceID,
			b.OptionID,
			b.BookingDate,
			b.StartTime,
			b.DurationMinutes,
			b.Status,
			b.Price,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("service_options o ON o.id = b.option_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByClient получает историю бронирований клиента
func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("service_options o ON o.id = b.option_id").
		Where(squirrel.Eq{"b.client_id": clientID}).
		OrderBy("b.booking_date DESC, b.start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListForBarberRange получает бронирования барбера за период одним
// запросом, с длительностью опции через JOIN (без N+1).
// По умолчанию отмененные бронирования отфильтровываются прямо в SQL
// по всем вариантам написания статуса, без учета регистра.
//
// Если метод вызван внутри транзакции и период равен одному дню,
// строки блокируются FOR UPDATE — это путь создания бронирования.
func (r *Repository) ListForBarberRange(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("service_options o ON o.id = b.option_id").
		Where(squirrel.Eq{"b.barber_id": filter.BarberID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.booking_date": *filter.EndDate})
	}

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"LOWER(b.status)": domain.CancelledStatusVariants})
	}

	selectBuilder = selectBuilder.OrderBy("b.booking_date ASC, b.start_time ASC")

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBarberRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBarberRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку выборки бронирования
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var optionDuration sql.NullInt64

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.BarberID,
		&b.ServiceID,
		&b.OptionID,
		&b.BookingDate,
		&b.StartTime,
		&b.Status,
		&b.Price,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
		&optionDuration,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Бронирования без опции занимают дефолтную длительность
	if optionDuration.Valid {
		b.DurationMinutes = int(optionDuration.Int64)
	} else {
		b.DurationMinutes = domain.DefaultOptionDurationMinutes
	}

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
