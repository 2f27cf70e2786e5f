package autherrors

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username, email or password",
		http.StatusUnauthorized,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"Account is inactive",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Account not found",
		http.StatusNotFound,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this resource",
		http.StatusForbidden,
	)
	ErrUsernameRequired = apperror.New(
		apperror.CodeValidation,
		"Username is required",
		http.StatusBadRequest,
	)
	ErrUsernameNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrBootstrapDisabled = apperror.New(
		apperror.CodeNotFound,
		"Setup is not enabled",
		http.StatusNotFound,
	)
	ErrBootstrapForbidden = apperror.New(
		apperror.CodeForbidden,
		"Invalid bootstrap token",
		http.StatusForbidden,
	)
)
