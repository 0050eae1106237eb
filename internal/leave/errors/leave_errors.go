package leaveerrors

import (
	"net/http"

	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
)

var (
	ErrInvalidLeaveRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date must be on or after start date",
		http.StatusBadRequest,
	)
	ErrNoDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"employee must be assigned to a department",
		http.StatusBadRequest,
	)
	ErrOwnerDepartmentUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"employee who requested this leave is not assigned to a department",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be 'approve' or 'reject'",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"another employee in your department already has an approved or pending leave during this period",
		http.StatusConflict,
	)
	ErrApproveOverlap = apperror.New(
		apperror.CodeConflict,
		"cannot approve: another employee in this department already has an approved or pending leave during this period",
		http.StatusConflict,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"leave requests in this department are being changed concurrently, please retry",
		http.StatusConflict,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not pending",
		http.StatusBadRequest,
	)
	ErrNotDepartmentHOD = apperror.New(
		apperror.CodeForbidden,
		"you are not the HOD of this employee's department",
		http.StatusForbidden,
	)
)
