package designationerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidDesignationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid designation id",
		http.StatusBadRequest,
	)
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"designation not found",
		http.StatusNotFound,
	)
	ErrDesignationNameTaken = apperror.New(
		apperror.CodeConflict,
		"designation name already exists",
		http.StatusConflict,
	)
	ErrDesignationInUse = apperror.New(
		apperror.CodeConflict,
		"designation is still assigned to employees",
		http.StatusConflict,
	)
)
