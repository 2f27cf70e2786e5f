package employeeerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrUsernameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Username is already taken",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
	ErrEmployeeInUse = apperror.New(
		apperror.CodeConflict,
		"Employee is still referenced by other records",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dob format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidState,
		"Role, department, designation or reporting manager does not exist",
		http.StatusUnprocessableEntity,
	)
	ErrSelfReportingManager = apperror.New(
		apperror.CodeInvalidState,
		"Employee cannot report to themselves",
		http.StatusUnprocessableEntity,
	)
	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeInvalidState,
		"You cannot delete your own employee record",
		http.StatusUnprocessableEntity,
	)
)
