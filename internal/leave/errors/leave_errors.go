package leaveerrors

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
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrActorNotFound = apperror.New(
		apperror.CodeForbidden,
		"actor is not an active employee",
		http.StatusForbidden,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrLeaveFinalized = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been finalized",
		http.StatusUnprocessableEntity,
	)
	ErrNotAwaitingDepartmentReview = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not awaiting department review",
		http.StatusUnprocessableEntity,
	)
	ErrNotAwaitingHRReview = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not awaiting HR review",
		http.StatusUnprocessableEntity,
	)
	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to review this leave request",
		http.StatusForbidden,
	)
	ErrLeaveConflict = apperror.New(
		apperror.CodeConflict,
		"leave request was reviewed by someone else, reload and try again",
		http.StatusConflict,
	)
	ErrSlipUnavailable = apperror.New(
		apperror.CodeInvalidState,
		"leave slip is only available for approved leave",
		http.StatusUnprocessableEntity,
	)
)
