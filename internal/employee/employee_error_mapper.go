package employee

import (
	"errors"
	"strings"

	employeeerrors "go-backoffice/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employees_email":
			return employeeerrors.ErrDuplicateEmail
		case "uq_employees_user_id":
			return employeeerrors.ErrDuplicateUser
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_employees_email") {
			return employeeerrors.ErrDuplicateEmail
		}
		if strings.Contains(errMsg, "uq_employees_user_id") {
			return employeeerrors.ErrDuplicateUser
		}
	}

	return err
}
