package departmenterrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"department name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeConflict,
		"department still has employees or requests attached",
		http.StatusConflict,
	)
	ErrHeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrHeadRoleRequired = apperror.New(
		apperror.CodeInvalidState,
		"only employees with the Department Head role can head a department",
		http.StatusUnprocessableEntity,
	)
	ErrHeadAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"employee already heads another department",
		http.StatusConflict,
	)
)
