package employeeerrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"employee email already exists",
		http.StatusConflict,
	)
	ErrDuplicateUser = apperror.New(
		apperror.CodeConflict,
		"user is already linked to another employee",
		http.StatusConflict,
	)
	ErrNoPendingProposal = apperror.New(
		apperror.CodeInvalidState,
		"employee has no pending salary proposal",
		http.StatusConflict,
	)
	ErrProposalPending = apperror.New(
		apperror.CodeConflict,
		"employee already has a pending salary proposal",
		http.StatusConflict,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"salary must be zero or positive",
		http.StatusBadRequest,
	)
)
