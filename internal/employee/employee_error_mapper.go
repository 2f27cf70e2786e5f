package employee

import (
	"errors"

	employeeerrors "github.com/Thomas-Sunil/newhrms/internal/employee/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	switch {
	case apperror.IsUniqueViolation(err, "uq_employee_number"):
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	case apperror.IsUniqueViolation(err, "uq_employee_email"),
		apperror.IsUniqueViolation(err, "uq_account_email"):
		return employeeerrors.ErrEmailAlreadyExists
	case apperror.IsUniqueViolation(err, "uq_employee_username"),
		apperror.IsUniqueViolation(err, "uq_account_username"):
		return employeeerrors.ErrUsernameAlreadyExists
	case apperror.IsForeignKeyViolation(err):
		return employeeerrors.ErrInvalidReference
	}

	return err
}
