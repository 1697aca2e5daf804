package availability_cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var testKey = domain.CacheKey{ProfessionalID: "pro-1", ServiceID: "svc-1", Date: "2024-01-02"}

func setup(t *testing.T, now time.Time) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db, 24*time.Hour)
	repo.now = func() time.Time { return now }
	return repo, mock
}

func TestRepository_Get_Hit(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo, mock := setup(t, createdAt.Add(time.Hour))

	mock.ExpectQuery(`SELECT slots, created_at FROM availability_cache WHERE cache_key = \$1`).
		WithArgs("pro-1_svc-1_2024-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"slots", "created_at"}).
			AddRow([]byte(`["2024-01-02T09:00:00Z","2024-01-02T09:15:00Z"]`), createdAt))

	entry, found, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []time.Time{
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC),
	}, entry.Slots)
	assert.Equal(t, createdAt, entry.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_Miss(t *testing.T) {
	repo, mock := setup(t, time.Now())

	mock.ExpectQuery(`FROM availability_cache`).
		WillReturnRows(sqlmock.NewRows([]string{"slots", "created_at"}))

	entry, found, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestRepository_Get_ExpiredIsMiss(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo, mock := setup(t, createdAt.Add(25*time.Hour))

	mock.ExpectQuery(`FROM availability_cache`).
		WillReturnRows(sqlmock.NewRows([]string{"slots", "created_at"}).AddRow([]byte(`[]`), createdAt))

	_, found, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_Set_Upserts(t *testing.T) {
	repo, mock := setup(t, time.Now())
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO availability_cache \(cache_key,professional_id,service_id,date,slots,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) ON CONFLICT \(cache_key\) DO UPDATE`).
		WithArgs("pro-1_svc-1_2024-01-02", "pro-1", "svc-1", "2024-01-02", []byte(`[]`), createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Set(context.Background(), testKey, &domain.CacheEntry{CreatedAt: createdAt})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := setup(t, time.Now())

	// отсутствующий ключ: 0 затронутых строк, не ошибка
	mock.ExpectExec(`DELETE FROM availability_cache WHERE cache_key = \$1`).
		WithArgs("pro-1_svc-1_2024-01-02").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), testKey))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_Error(t *testing.T) {
	repo, mock := setup(t, time.Now())

	mock.ExpectExec(`DELETE FROM availability_cache`).WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrExecQuery)
}
