package assignment

import (
	"errors"
	"strings"

	assignmenterrors "go-backoffice/internal/assignment/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_scheme_effective" {
		return assignmenterrors.ErrDuplicateAssignment
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_scheme_effective") {
		return assignmenterrors.ErrDuplicateAssignment
	}

	return err
}
