package dashboarderrors

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
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee profile not found",
		http.StatusNotFound,
	)
)
