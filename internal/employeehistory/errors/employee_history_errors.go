package employeehistoryerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid effective_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrHistoryForbidden = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to view this employment history",
		http.StatusForbidden,
	)
	ErrNoPlacementChange = apperror.New(
		apperror.CodeInvalidState,
		"A promotion must change the designation and a transfer must change the department",
		http.StatusUnprocessableEntity,
	)
	ErrHistoryEntryExists = apperror.New(
		apperror.CodeConflict,
		"A change of this type is already recorded for that date",
		http.StatusConflict,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidState,
		"Department or designation does not exist",
		http.StatusUnprocessableEntity,
	)
)
