package holidayerrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on this date",
		http.StatusConflict,
	)
	ErrInvalidWorkbook = apperror.New(
		apperror.CodeInvalidInput,
		"file is not a readable xlsx workbook",
		http.StatusBadRequest,
	)
	ErrMissingColumns = apperror.New(
		apperror.CodeInvalidInput,
		"workbook needs Date and Reason columns",
		http.StatusBadRequest,
	)
)
