package departmenterrors

import (
	"fmt"
	"net/http"

	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrNoDepartmentForHOD = apperror.New(
		apperror.CodeNotFound,
		"no department found where you are HOD",
		http.StatusNotFound,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"department name already exists",
		http.StatusConflict,
	)
)

// NameTaken names the conflicting department in the message.
func NameTaken(name string) *apperror.AppError {
	return apperror.Wrap(
		ErrDepartmentNameExists,
		apperror.CodeConflict,
		fmt.Sprintf("department with name %s already exists", name),
		http.StatusConflict,
	)
}
