package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "github.com/Falasefemi2/hr-portal/internal/department/errors"
	"github.com/Falasefemi2/hr-portal/internal/shared/database"
	"github.com/Falasefemi2/hr-portal/internal/shared/scope"

	"gorm.io/gorm"
)

const uniqueNameConstraint = "uq_departments_name"

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	FindByName(ctx context.Context, name string) (*Department, error)
	FindFirstByHOD(ctx context.Context, employeeID string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(dept).Error, dept.Name)
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(scope.Oldest).
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	if err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return &dept, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	if err := r.db.WithContext(ctx).First(&dept, "name = ?", name).Error; err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return &dept, nil
}

// FindFirstByHOD returns the lowest-id department headed by employeeID, so a
// duplicated HOD assignment always resolves to the same department.
func (r *repository) FindFirstByHOD(ctx context.Context, employeeID string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(scope.Oldest).
		Where("hod_employee_id = ?", employeeID).
		Take(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, departmenterrors.ErrNoDepartmentForHOD
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return mapRepositoryError(r.db.WithContext(ctx).Save(dept).Error, dept.Name)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return departmenterrors.ErrDepartmentNotFound
	}
	return nil
}

func mapRepositoryError(err error, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if database.IsUniqueViolation(err, uniqueNameConstraint) {
		return departmenterrors.NameTaken(name)
	}
	return err
}
