package department

import (
	"context"
	"errors"

	departmenterrors "github.com/Falasefemi2/hr-portal/internal/department/errors"
	"github.com/Falasefemi2/hr-portal/internal/identity"

	"go.uber.org/zap"
)

// Directory answers the department questions the leave lifecycle asks.
//
//go:generate mockgen -source=department_directory.go -destination=mock/department_directory_mock.go -package=mock
type Directory interface {
	Department(ctx context.Context, id int64) (*Department, error)
	DepartmentOfHOD(ctx context.Context, caller *identity.Caller) (*Department, error)
	EmployeesOf(ctx context.Context, departmentID int64, token string) []string
}

type directory struct {
	repo    Repository
	gateway identity.Gateway
	logger  *zap.Logger
}

func NewDirectory(repo Repository, gateway identity.Gateway, logger ...*zap.Logger) Directory {
	l := zap.L().Named("department.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.directory")
	}
	return &directory{repo: repo, gateway: gateway, logger: l}
}

func (d *directory) Department(ctx context.Context, id int64) (*Department, error) {
	return d.repo.FindByID(ctx, id)
}

// DepartmentOfHOD returns the first department, by id, whose HOD is the caller.
func (d *directory) DepartmentOfHOD(ctx context.Context, caller *identity.Caller) (*Department, error) {
	if caller == nil || caller.EmployeeID == "" {
		return nil, departmenterrors.ErrNoDepartmentForHOD
	}

	dept, err := d.repo.FindFirstByHOD(ctx, caller.EmployeeID)
	if err != nil {
		if !errors.Is(err, departmenterrors.ErrNoDepartmentForHOD) {
			d.logger.Error("hod lookup failed", zap.String("employee_id", caller.EmployeeID), zap.Error(err))
		}
		return nil, err
	}
	return dept, nil
}

// EmployeesOf lists the employee ids of a department. It never fails: when the
// identity service cannot answer, the department is treated as empty.
func (d *directory) EmployeesOf(ctx context.Context, departmentID int64, token string) []string {
	users := d.gateway.UsersInDepartment(ctx, departmentID, token)
	if len(users) == 0 {
		d.logger.Warn("no employees resolved for department", zap.Int64("department_id", departmentID))
		return []string{}
	}

	seen := make(map[string]struct{}, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		if u.EmployeeID == "" {
			continue
		}
		if _, dup := seen[u.EmployeeID]; dup {
			continue
		}
		seen[u.EmployeeID] = struct{}{}
		ids = append(ids, u.EmployeeID)
	}
	return ids
}
