package leaveerrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidApplicationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave application id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"leave application has already been decided",
		http.StatusConflict,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeConflict,
		"only pending applications can be cancelled",
		http.StatusConflict,
	)
	ErrApproverNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to decide leave applications",
		http.StatusForbidden,
	)
	ErrCancelNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the applicant can cancel this application",
		http.StatusForbidden,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"applicants cannot decide their own leave application",
		http.StatusForbidden,
	)
)
