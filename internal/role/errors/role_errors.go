package roleerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrRoleNameTaken = apperror.New(
		apperror.CodeConflict,
		"role name already exists",
		http.StatusConflict,
	)
	ErrRoleNameBlank = apperror.New(
		apperror.CodeValidation,
		"Name is required",
		http.StatusBadRequest,
	)
)
