package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-backoffice/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_payrolls_employee_period" {
			return payrollerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") &&
		strings.Contains(errMsg, "uq_payrolls_employee_period") {
		return payrollerrors.ErrDuplicatePeriod
	}

	return err
}
