package policyerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid policy id",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"policy not found",
		http.StatusNotFound,
	)
)
