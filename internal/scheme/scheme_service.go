package scheme

import (
	"context"
	"database/sql"
	"errors"

	schemeerrors "go-backoffice/internal/scheme/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=scheme_service.go -destination=mock/scheme_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateSchemeRequest) (SchemeResponse, error)
	GetAll(ctx context.Context) ([]SchemeResponse, error)
	GetByID(ctx context.Context, id string) (SchemeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateSchemeRequest) (SchemeResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	AttachLeaveType(ctx context.Context, actorID, schemeID string, req AttachLeaveTypeRequest) (SchemeResponse, error)
	DetachLeaveType(ctx context.Context, actorID, schemeID, leaveTypeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("scheme.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheme.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateSchemeRequest) (SchemeResponse, error) {
	s.logger.Debug("create scheme requested",
		zap.String("actor_id", actorID),
		zap.String("name", req.Name),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidSchemeID
	}

	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return SchemeResponse{}, schemeerrors.ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SchemeResponse{}, err
	}

	sch := &LeaveScheme{
		ID:        uuid.New(),
		Name:      req.Name,
		IsActive:  true,
		CreatedBy: actorUUID,
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		s.logger.Error("create scheme persist failed", zap.Error(err))
		return SchemeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create scheme success",
		zap.String("scheme_id", sch.ID.String()),
		zap.String("name", sch.Name),
	)
	return mapToResponse(*sch), nil
}

func (s *service) GetAll(ctx context.Context) ([]SchemeResponse, error) {
	schemes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]SchemeResponse, len(schemes))
	for i, sch := range schemes {
		resp[i] = mapToResponse(sch)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SchemeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidSchemeID
	}
	sch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SchemeResponse{}, schemeerrors.ErrSchemeNotFound
		}
		return SchemeResponse{}, err
	}
	return mapToResponse(*sch), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateSchemeRequest) (SchemeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidSchemeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidSchemeID
	}

	sch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SchemeResponse{}, schemeerrors.ErrSchemeNotFound
		}
		return SchemeResponse{}, err
	}

	if req.Name != sch.Name {
		if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
			return SchemeResponse{}, schemeerrors.ErrDuplicateName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SchemeResponse{}, err
		}
	}

	sch.Name = req.Name
	if req.IsActive != nil {
		sch.IsActive = *req.IsActive
	}
	sch.UpdatedBy = &actorUUID

	if err := s.repo.Update(ctx, sch); err != nil {
		s.logger.Error("update scheme persist failed",
			zap.String("scheme_id", id),
			zap.Error(err),
		)
		return SchemeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*sch), nil
}

// Delete menolak penghapusan selama masih ada leave type terpasang.
// Kebijakan ini disengaja: detach dulu, baru hapus, supaya tidak ada
// cascade diam-diam ke konfigurasi alokasi.
func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return schemeerrors.ErrInvalidSchemeID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schemeerrors.ErrSchemeNotFound
		}
		return err
	}

	count, err := s.repo.CountAttachments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("delete scheme blocked, leave types still attached",
			zap.String("scheme_id", id),
			zap.Int64("attachments", count),
		)
		return schemeerrors.ErrSchemeInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("delete scheme success",
		zap.String("scheme_id", id),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *service) AttachLeaveType(ctx context.Context, actorID, schemeID string, req AttachLeaveTypeRequest) (SchemeResponse, error) {
	s.logger.Debug("attach leave type requested",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("days_allowed", req.DaysAllowed),
	)

	if _, err := uuid.Parse(schemeID); err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidSchemeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return SchemeResponse{}, schemeerrors.ErrInvalidLeaveTypeID
	}
	if req.DaysAllowed < 0 {
		return SchemeResponse{}, schemeerrors.ErrInvalidDaysAllowed
	}

	sch, err := s.repo.FindByID(ctx, schemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SchemeResponse{}, schemeerrors.ErrSchemeNotFound
		}
		return SchemeResponse{}, err
	}

	if _, err := s.repo.FindAttachment(ctx, schemeID, req.LeaveTypeID); err == nil {
		return SchemeResponse{}, schemeerrors.ErrDuplicateAttachment
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SchemeResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	attachment := &SchemeLeaveType{
		ID:          uuid.New(),
		SchemeID:    sch.ID,
		LeaveTypeID: leaveTypeUUID,
		DaysAllowed: req.DaysAllowed,
		IsPaid:      isPaid,
	}

	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		s.logger.Error("attach leave type persist failed",
			zap.String("scheme_id", schemeID),
			zap.Error(err),
		)
		return SchemeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("attach leave type success",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	updated, err := s.repo.FindByID(ctx, schemeID)
	if err != nil {
		return SchemeResponse{}, err
	}
	return mapToResponse(*updated), nil
}

func (s *service) DetachLeaveType(ctx context.Context, actorID, schemeID, leaveTypeID string) error {
	if _, err := uuid.Parse(schemeID); err != nil {
		return schemeerrors.ErrInvalidSchemeID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return schemeerrors.ErrInvalidLeaveTypeID
	}

	affected, err := s.repo.DeleteAttachment(ctx, schemeID, leaveTypeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Detach ulang untuk pasangan yang sama aman: error eksplisit, bukan crash
		return schemeerrors.ErrAttachmentNotFound
	}

	s.logger.Info("detach leave type success",
		zap.String("scheme_id", schemeID),
		zap.String("leave_type_id", leaveTypeID),
	)
	return nil
}

func mapToResponse(s LeaveScheme) SchemeResponse {
	resp := SchemeResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		IsActive:   s.IsActive,
		CreatedBy:  s.CreatedBy.String(),
		LeaveTypes: make([]SchemeLeaveTypeResponse, len(s.LeaveTypes)),
	}
	if s.UpdatedBy != nil {
		v := s.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	for i, a := range s.LeaveTypes {
		item := SchemeLeaveTypeResponse{
			ID:          a.ID.String(),
			LeaveTypeID: a.LeaveTypeID.String(),
			DaysAllowed: a.DaysAllowed,
			IsPaid:      a.IsPaid,
		}
		if a.LeaveType != nil {
			item.LeaveTypeName = a.LeaveType.Name
			item.LeaveTypeCode = a.LeaveType.Code
		}
		resp.LeaveTypes[i] = item
	}
	return resp
}
