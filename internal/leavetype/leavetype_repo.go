package leavetype

import (
	"context"
	"database/sql"
	"errors"

	leavetypeerrors "github.com/Falasefemi2/hr-portal/internal/leavetype/errors"
	"github.com/Falasefemi2/hr-portal/internal/shared/database"
	"github.com/Falasefemi2/hr-portal/internal/shared/scope"

	"gorm.io/gorm"
)

const uniqueNameConstraint = "uq_leave_types_name"

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByID(ctx context.Context, id int64) (*LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, id int64) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(lt).Error, lt.Name)
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(scope.Oldest).
		Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*LeaveType, error) {
	var lt LeaveType
	if err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return &lt, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	if err := r.db.WithContext(ctx).First(&lt, "name = ?", name).Error; err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return &lt, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return mapRepositoryError(r.db.WithContext(ctx).Save(lt).Error, lt.Name)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&LeaveType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	return nil
}

func mapRepositoryError(err error, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	if database.IsUniqueViolation(err, uniqueNameConstraint) {
		return leavetypeerrors.NameTaken(name)
	}
	return err
}
