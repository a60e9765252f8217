package leaderrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidLeadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid lead id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrLeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"lead not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"lead status transition is not allowed",
		http.StatusConflict,
	)
	ErrLeadTerminal = apperror.New(
		apperror.CodeInvalidState,
		"lead is already in a terminal status",
		http.StatusConflict,
	)
	ErrReenquireNotTerminal = apperror.New(
		apperror.CodeInvalidState,
		"only converted or dropped leads can be reenquired",
		http.StatusConflict,
	)
)
