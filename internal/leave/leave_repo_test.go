package leave_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/leave"
	leaveerrors "github.com/Falasefemi2/hr-portal/internal/leave/errors"
	"github.com/Falasefemi2/hr-portal/internal/overlap"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, leave.Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock, leave.NewRepository(gdb)
}

var leaveColumns = []string{
	"id", "employee_id", "leave_type_id", "start_date", "end_date", "status", "reason",
	"approved_by", "rejection_reason", "created_at", "updated_at",
}

func TestRepository_FindOverlapping(t *testing.T) {
	ctx := context.Background()

	t.Run("empty employee set issues no query", func(t *testing.T) {
		db, mock, repo := setupRepo(t)
		defer db.Close()

		found, err := repo.FindOverlapping(ctx, overlap.Query{Start: date("2025-06-01"), End: date("2025-06-05")})

		require.NoError(t, err)
		assert.Empty(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("closed interval query excluding the request under decision", func(t *testing.T) {
		db, mock, repo := setupRepo(t)
		defer db.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "leave_requests" WHERE employee_id IN \(\$1,\$2\) AND status IN \(\$3,\$4\) AND .*start_date <= \$5 AND end_date >= \$6.* AND id <> \$7 ORDER BY id ASC`).
			WithArgs("E2", "E3", overlap.StatusPending, overlap.StatusApproved, date("2025-06-05"), date("2025-06-01"), int64(100)).
			WillReturnRows(sqlmock.NewRows(leaveColumns).
				AddRow(101, "E3", 1, date("2025-06-05"), date("2025-06-06"), "PENDING", "", nil, nil, now, now))

		found, err := repo.FindOverlapping(ctx, overlap.Query{
			EmployeeIDs: []string{"E2", "E3"},
			Start:       date("2025-06-01"),
			End:         date("2025-06-05"),
			ExcludeID:   100,
		})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(101), found[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindPendingByEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("empty employee set", func(t *testing.T) {
		db, mock, repo := setupRepo(t)
		defer db.Close()

		found, err := repo.FindPendingByEmployees(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending only", func(t *testing.T) {
		db, mock, repo := setupRepo(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "leave_requests" WHERE employee_id IN ($1) AND status IN ($2) ORDER BY created_at DESC,id DESC`)).
			WithArgs("E2", leave.StatusPending).
			WillReturnRows(sqlmock.NewRows(leaveColumns))

		_, err := repo.FindPendingByEmployees(ctx, []string{"E2"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db, mock, repo := setupRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "leave_requests" WHERE id = $1`)).
		WithArgs(int64(9), 1).
		WillReturnRows(sqlmock.NewRows(leaveColumns))

	_, err := repo.FindByID(context.Background(), 9)

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestRepository_LockDepartmentRunsOnTx(t *testing.T) {
	db, mock, repo := setupRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).LockDepartment(context.Background(), 10))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
