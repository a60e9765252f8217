package brancherrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid branch id",
		http.StatusBadRequest,
	)
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"branch not found",
		http.StatusNotFound,
	)
	ErrDuplicateBranchName = apperror.New(
		apperror.CodeConflict,
		"branch name already exists",
		http.StatusConflict,
	)
	ErrCountryNotFound = apperror.New(
		apperror.CodeNotFound,
		"country not found",
		http.StatusNotFound,
	)
	ErrDuplicateCountry = apperror.New(
		apperror.CodeConflict,
		"country name or code already exists",
		http.StatusConflict,
	)
)
