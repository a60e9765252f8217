package rbacerrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrDuplicateRoleName = apperror.New(
		apperror.CodeConflict,
		"role name already exists",
		http.StatusConflict,
	)
	ErrBuiltinRoleImmutable = apperror.New(
		apperror.CodeForbidden,
		"builtin roles cannot be modified or deleted",
		http.StatusForbidden,
	)
	ErrInvalidPermission = apperror.New(
		apperror.CodeInvalidInput,
		"permission must be 'resource', 'resource.action' or '*'",
		http.StatusBadRequest,
	)
)
