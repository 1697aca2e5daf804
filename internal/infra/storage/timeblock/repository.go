package timeblock

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "time_blocks"

// Repository репозиторий ручных блокировок времени (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListInRange возвращает блокировки специалиста с началом в окне [filter.From, filter.To)
// Блокировка действует на все услуги специалиста, независимо от service_id
func (r *Repository) ListInRange(ctx context.Context, filter domain.RangeFilter) ([]*domain.TimeBlock, error) {
	if filter.ProfessionalID == "" || !filter.From.Before(filter.To) {
		return nil, fmt.Errorf("%w: ListInRange - professional=%q from=%s to=%s",
			ErrInvalidFilter, filter.ProfessionalID, filter.From, filter.To)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"service_id",
		"start_at",
		"end_at",
		"reason",
	).
		From(tableName).
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		Where(squirrel.GtOrEq{"start_at": filter.From}).
		Where(squirrel.Lt{"start_at": filter.To}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		var (
			b         domain.TimeBlock
			serviceID sql.NullString
			reason    sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.ProfessionalID, &serviceID, &b.Start, &b.End, &reason); err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %v", ErrScanRow, err)
		}
		if serviceID.Valid {
			b.ServiceID = &serviceID.String
		}
		if reason.Valid {
			b.Reason = &reason.String
		}
		b.Start = b.Start.UTC()
		b.End = b.End.UTC()
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows iteration: %v", ErrScanRow, err)
	}

	return blocks, nil
}
