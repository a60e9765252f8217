package leavetype

import (
	"errors"
	"strings"

	leavetypeerrors "go-backoffice/internal/leavetype/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_types_code" {
			return leavetypeerrors.ErrDuplicateCode
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_types_code") {
		return leavetypeerrors.ErrDuplicateCode
	}

	return err
}
