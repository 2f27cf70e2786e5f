package attendanceerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"already clocked in for today",
		http.StatusConflict,
	)
	ErrClockInNotFound = apperror.New(
		apperror.CodeInvalidState,
		"clock in not found for today",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"already clocked out for today",
		http.StatusConflict,
	)
	ErrAlreadyPresent = apperror.New(
		apperror.CodeConflict,
		"employee has already clocked in on that date",
		http.StatusConflict,
	)
	ErrCalendarForbidden = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own attendance calendar",
		http.StatusForbidden,
	)
)
