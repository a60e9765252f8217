package attendance

import (
	"context"
	"time"

	attendanceerrors "go-backoffice/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, actorID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID, from, to string) ([]AttendanceResponse, error)
	Summary(ctx context.Context, employeeID, from, to string) (AttendanceSummaryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Mark(ctx context.Context, actorID string, req MarkAttendanceRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	if !IsValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	// Absensi masa depan ditolak: status hari yang belum terjadi tidak bermakna
	if date.After(time.Now().Truncate(24 * time.Hour)) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	a := &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Date:       date,
		Status:     req.Status,
		Note:       req.Note,
		MarkedBy:   actorUUID,
	}

	if err := s.repo.Upsert(ctx, a); err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID, from, to string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByEmployee(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(list))
	for i, a := range list {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) Summary(ctx context.Context, employeeID, from, to string) (AttendanceSummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	counts, err := s.repo.CountByStatus(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	return AttendanceSummaryResponse{
		EmployeeID: employeeID,
		From:       fromDate.Format(dateLayout),
		To:         toDate.Format(dateLayout),
		Counts:     counts,
	}, nil
}

// parseRange: default 30 hari terakhir kalau parameter kosong.
func parseRange(from, to string) (time.Time, time.Time, error) {
	now := time.Now().Truncate(24 * time.Hour)
	fromDate := now.AddDate(0, 0, -30)
	toDate := now

	var err error
	if from != "" {
		if fromDate, err = time.Parse(dateLayout, from); err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
		}
	}
	if to != "" {
		if toDate, err = time.Parse(dateLayout, to); err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
		}
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return fromDate, toDate, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format(dateLayout),
		Status:     a.Status,
		Note:       a.Note,
		MarkedBy:   a.MarkedBy.String(),
	}
}
