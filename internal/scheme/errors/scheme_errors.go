package schemeerrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidSchemeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid scheme id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrDuplicateName = apperror.New(
		apperror.CodeConflict,
		"leave scheme name already exists",
		http.StatusConflict,
	)
	ErrSchemeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave scheme not found",
		http.StatusNotFound,
	)
	ErrDuplicateAttachment = apperror.New(
		apperror.CodeConflict,
		"leave type is already attached to this scheme",
		http.StatusConflict,
	)
	ErrAttachmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type is not attached to this scheme",
		http.StatusNotFound,
	)
	ErrSchemeInUse = apperror.New(
		apperror.CodeConflict,
		"scheme still has leave types attached, detach them first",
		http.StatusConflict,
	)
	ErrInvalidDaysAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"days_allowed must be zero or positive",
		http.StatusBadRequest,
	)
)
