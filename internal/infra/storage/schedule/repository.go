package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
	"github.com/barbersched/BarberSched-BookingService/pkg/psqlbuilder"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Repository репозиторий рабочих часов, перерывов и исключений расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWorkingHours получает недельное расписание барбера вместе с
// перерывами. Перерывы подтягиваются одним запросом на все записи.
func (r *Repository) ListWorkingHours(ctx context.Context, barberID int64) ([]*domain.WorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHour, 0)
	ids := make([]int64, 0)
	byID := make(map[int64]*domain.WorkingHour)

	for rows.Next() {
		var wh domain.WorkingHour
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&wh.ID,
			&wh.BarberID,
			&wh.Weekday,
			&wh.StartTime,
			&wh.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - scan row: %v", ErrScanRow, err)
		}

		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time
		wh.Breaks = make([]domain.Break, 0)

		hours = append(hours, &wh)
		ids = append(ids, wh.ID)
		byID[wh.ID] = &wh
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return hours, nil
	}

	if err := r.attachBreaks(ctx, executor, ids, byID); err != nil {
		return nil, err
	}

	return hours, nil
}

// attachBreaks загружает перерывы для набора записей рабочих часов
func (r *Repository) attachBreaks(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.WorkingHour) error {
	query, args, err := psqlbuilder.Select(
		"id",
		"working_hour_id",
		"start_time",
		"end_time",
	).
		From("work_breaks").
		Where(squirrel.Eq{"working_hour_id": ids}).
		OrderBy("working_hour_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var br domain.Break
		var workingHourID int64

		if err := rows.Scan(&br.ID, &workingHourID, &br.StartTime, &br.EndTime); err != nil {
			return fmt.Errorf("%w: attachBreaks - scan row: %v", ErrScanRow, err)
		}

		if wh, ok := byID[workingHourID]; ok {
			wh.Breaks = append(wh.Breaks, br)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachBreaks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// ListExceptions получает исключения расписания барбера внутри диапазона дат
func (r *Repository) ListExceptions(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"exception_date",
		"start_time",
		"end_time",
		"type",
		"created_at",
	).
		From("schedule_exceptions").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		Where(squirrel.LtOrEq{"exception_date": to}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)

	for rows.Next() {
		var exc domain.ScheduleException
		var createdAt sql.NullTime
		var startTime, endTime types.NullTimeString

		err := rows.Scan(
			&exc.ID,
			&exc.BarberID,
			&exc.Date,
			&startTime,
			&endTime,
			&exc.Type,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan row: %v", ErrScanRow, err)
		}

		exc.StartTime = startTime.Ptr()
		exc.EndTime = endTime.Ptr()
		exc.CreatedAt = createdAt.Time
		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// ReplaceWorkingHours заменяет недельное расписание барбера целиком.
// Вызывается внутри транзакции (service/schedule): старые записи и их
// перерывы удаляются каскадом, новые вставляются.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, barberID int64, hours []*domain.WorkingHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	for _, wh := range hours {
		query, args, err := psqlbuilder.Insert("working_hours").
			Columns("barber_id", "weekday", "start_time", "end_time").
			Values(barberID, wh.Weekday, wh.StartTime, wh.EndTime).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
		}

		var workingHourID int64
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&workingHourID); err != nil {
			return fmt.Errorf("%w: ReplaceWorkingHours - insert working hour: %v", ErrExecQuery, err)
		}

		for _, br := range wh.Breaks {
			query, args, err := psqlbuilder.Insert("work_breaks").
				Columns("working_hour_id", "start_time", "end_time").
				Values(workingHourID, br.StartTime, br.EndTime).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: ReplaceWorkingHours - build break insert: %v", ErrBuildQuery, err)
			}

			if _, err := executor.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: ReplaceWorkingHours - insert break: %v", ErrExecQuery, err)
			}
		}
	}

	return nil
}
