package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	leavetypeerrors "go-backoffice/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsCacheKey = "leave_types:options"

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, actorID, id string) (LeaveTypeResponse, error)
	GetOptions(ctx context.Context) ([]LeaveTypeOption, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("actor_id", actorID),
		zap.String("code", req.Code),
	)

	if req.MaxDays < 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidMaxDays
	}

	// Kode dinormalisasi ke huruf besar ("sl" dan "SL" adalah kode yang sama)
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveTypeResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}
	color := req.Color
	if color == "" {
		color = "#4A90D9"
	}

	lt := &LeaveType{
		ID:          uuid.New(),
		Name:        req.Name,
		Code:        code,
		Description: req.Description,
		Color:       color,
		IsPaid:      isPaid,
		MaxDays:     req.MaxDays,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("code", lt.Code),
	)

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Name = req.Name
	lt.Description = req.Description
	if req.Color != "" {
		lt.Color = req.Color
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.MaxDays != nil {
		if *req.MaxDays < 0 {
			return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidMaxDays
		}
		lt.MaxDays = *req.MaxDays
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*lt), nil
}

// Deactivate mematikan leave type tanpa menghapus baris.
// Scheme link dan balance yang sudah ada tetap valid secara historis.
func (s *service) Deactivate(ctx context.Context, actorID, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.IsActive = false
	if err := s.repo.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("leave type deactivated",
		zap.String("leave_type_id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetOptions(ctx context.Context) ([]LeaveTypeOption, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []LeaveTypeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya cache miss serentak tidak membanjiri DB
	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx, true)
		if err != nil {
			return nil, err
		}

		resp := make([]LeaveTypeOption, len(types))
		for i, lt := range types {
			resp[i] = LeaveTypeOption{
				ID:    lt.ID.String(),
				Name:  lt.Name,
				Code:  lt.Code,
				Color: lt.Color,
			}
		}

		// 3. Simpan ke Redis (data master, TTL 1 jam cukup)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeOption), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Name:        lt.Name,
		Code:        lt.Code,
		Description: lt.Description,
		Color:       lt.Color,
		IsPaid:      lt.IsPaid,
		MaxDays:     lt.MaxDays,
		IsActive:    lt.IsActive,
	}
}
