package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "appointments"

// Repository репозиторий записей клиентов (только чтение)
// Записи создаются и изменяются внешними сервисами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBlocking возвращает записи специалиста, занимающие время,
// с началом в окне [filter.From, filter.To)
// Отменённые записи не возвращаются, записи без статуса считаются блокирующими
func (r *Repository) ListBlocking(ctx context.Context, filter domain.RangeFilter) ([]*domain.Appointment, error) {
	if filter.ProfessionalID == "" || !filter.From.Before(filter.To) {
		return nil, fmt.Errorf("%w: ListBlocking - professional=%q from=%s to=%s",
			ErrInvalidFilter, filter.ProfessionalID, filter.From, filter.To)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"service_id",
		"start_at",
		"end_at",
		"status",
	).
		From(tableName).
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		Where(squirrel.GtOrEq{"start_at": filter.From}).
		Where(squirrel.Lt{"start_at": filter.To}).
		Where(squirrel.Or{
			squirrel.NotEq{"status": string(domain.StatusCancelled)},
			squirrel.Eq{"status": nil},
		}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// scanAppointments сканирует строки результата в записи
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var (
			a      domain.Appointment
			status sql.NullString
		)

		if err := rows.Scan(
			&a.ID,
			&a.ProfessionalID,
			&a.ServiceID,
			&a.Start,
			&a.End,
			&status,
		); err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		a.Status = domain.AppointmentStatus(status.String)
		a.Start = a.Start.UTC()
		a.End = a.End.UTC()
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows iteration: %v", ErrScanRow, err)
	}

	return appointments, nil
}
