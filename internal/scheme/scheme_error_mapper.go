package scheme

import (
	"errors"
	"strings"

	schemeerrors "go-backoffice/internal/scheme/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_leave_schemes_name":
			return schemeerrors.ErrDuplicateName
		case "uq_scheme_leave_types_pair":
			return schemeerrors.ErrDuplicateAttachment
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_leave_schemes_name") {
			return schemeerrors.ErrDuplicateName
		}
		if strings.Contains(errMsg, "uq_scheme_leave_types_pair") {
			return schemeerrors.ErrDuplicateAttachment
		}
	}

	return err
}
