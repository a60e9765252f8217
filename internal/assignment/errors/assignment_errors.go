package assignmenterrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidAssignmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid assignment id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_to must be after effective_from",
		http.StatusBadRequest,
	)
	ErrDuplicateAssignment = apperror.New(
		apperror.CodeConflict,
		"employee already has this scheme assigned from the same effective date",
		http.StatusConflict,
	)
	ErrAssignmentOverlap = apperror.New(
		apperror.CodeConflict,
		"assignment period overlaps an existing assignment for this employee",
		http.StatusConflict,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"scheme assignment not found",
		http.StatusNotFound,
	)
	ErrNoCurrentScheme = apperror.New(
		apperror.CodeNotFound,
		"employee has no active leave scheme",
		http.StatusNotFound,
	)
)
