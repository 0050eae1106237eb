package leave

import (
	"context"
	"database/sql"
	"errors"

	leaveerrors "github.com/Falasefemi2/hr-portal/internal/leave/errors"
	"github.com/Falasefemi2/hr-portal/internal/overlap"
	"github.com/Falasefemi2/hr-portal/internal/shared/database"
	"github.com/Falasefemi2/hr-portal/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id int64) (*LeaveRequest, error)
	FindPendingByEmployees(ctx context.Context, employeeIDs []string) ([]LeaveRequest, error)
	FindOverlapping(ctx context.Context, q overlap.Query) ([]LeaveRequest, error)
	LockDepartment(ctx context.Context, departmentID int64) error
	Update(ctx context.Context, l *LeaveRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Newest).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Employees([]string{employeeID}), scope.Newest).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindPendingByEmployees(ctx context.Context, employeeIDs []string) ([]LeaveRequest, error) {
	if len(employeeIDs) == 0 {
		return []LeaveRequest{}, nil
	}

	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Employees(employeeIDs), scope.Status(StatusPending), scope.Newest).
		Find(&leaves).Error
	return leaves, err
}

// FindOverlapping returns the blocking requests selected by q. An empty
// employee set matches nothing and issues no query.
func (r *repository) FindOverlapping(ctx context.Context, q overlap.Query) ([]LeaveRequest, error) {
	if q.Empty() {
		return []LeaveRequest{}, nil
	}

	db := r.db.WithContext(ctx).
		Scopes(scope.Employees(q.EmployeeIDs), scope.Status(overlap.BlockingStatuses...)).
		Where("start_date <= ? AND end_date >= ?", overlap.Date(q.End), overlap.Date(q.Start))
	if q.ExcludeID != 0 {
		db = db.Where("id <> ?", q.ExcludeID)
	}

	var leaves []LeaveRequest
	err := db.Scopes(scope.Oldest).Find(&leaves).Error
	return leaves, err
}

// LockDepartment serializes check-then-write operations of one department
// until the surrounding transaction ends.
func (r *repository) LockDepartment(ctx context.Context, departmentID int64) error {
	return database.AdvisoryXactLock(ctx, r.db, departmentID)
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}
