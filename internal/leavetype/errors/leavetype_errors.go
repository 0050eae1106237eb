package leavetypeerrors

import (
	"fmt"
	"net/http"

	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNameExists = apperror.New(
		apperror.CodeConflict,
		"leave type name already exists",
		http.StatusConflict,
	)
)

func NameTaken(name string) *apperror.AppError {
	return apperror.Wrap(
		ErrLeaveTypeNameExists,
		apperror.CodeConflict,
		fmt.Sprintf("leave type with name %s already exists", name),
		http.StatusConflict,
	)
}
