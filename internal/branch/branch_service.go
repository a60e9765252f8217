package branch

import (
	"context"
	"errors"
	"strings"

	brancherrors "go-backoffice/internal/branch/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	CreateCountry(ctx context.Context, req CreateCountryRequest) (CountryResponse, error)
	GetCountries(ctx context.Context) ([]CountryResponse, error)

	CreateBranch(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetBranches(ctx context.Context) ([]BranchResponse, error)
	GetBranchByID(ctx context.Context, id string) (BranchResponse, error)
	UpdateBranch(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateCountry(ctx context.Context, req CreateCountryRequest) (CountryResponse, error) {
	c := &Country{
		ID:   uuid.New(),
		Name: req.Name,
		Code: strings.ToUpper(req.Code),
	}

	if err := s.repo.CreateCountry(ctx, c); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return CountryResponse{}, brancherrors.ErrDuplicateCountry
		}
		return CountryResponse{}, err
	}

	s.logger.Info("create country success", zap.String("country_id", c.ID.String()), zap.String("code", c.Code))
	return CountryResponse{ID: c.ID.String(), Name: c.Name, Code: c.Code}, nil
}

func (s *service) GetCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.repo.FindAllCountries(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CountryResponse, len(countries))
	for i, c := range countries {
		resp[i] = CountryResponse{ID: c.ID.String(), Name: c.Name, Code: c.Code}
	}
	return resp, nil
}

func (s *service) CreateBranch(ctx context.Context, req CreateBranchRequest) (BranchResponse, error) {
	countryUUID, err := uuid.Parse(req.CountryID)
	if err != nil {
		return BranchResponse{}, brancherrors.ErrCountryNotFound
	}

	if _, err := s.repo.FindCountryByID(ctx, req.CountryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, brancherrors.ErrCountryNotFound
		}
		return BranchResponse{}, err
	}

	if _, err := s.repo.FindBranchByName(ctx, req.Name); err == nil {
		return BranchResponse{}, brancherrors.ErrDuplicateBranchName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BranchResponse{}, err
	}

	b := &Branch{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		CountryID: countryUUID,
		IsActive:  true,
	}

	if err := s.repo.CreateBranch(ctx, b); err != nil {
		return BranchResponse{}, err
	}

	s.logger.Info("create branch success", zap.String("branch_id", b.ID.String()), zap.String("name", b.Name))
	return mapToResponse(*b), nil
}

func (s *service) GetBranches(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.repo.FindAllBranches(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BranchResponse, len(branches))
	for i, b := range branches {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) GetBranchByID(ctx context.Context, id string) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	b, err := s.repo.FindBranchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, brancherrors.ErrBranchNotFound
		}
		return BranchResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) UpdateBranch(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	b, err := s.repo.FindBranchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, brancherrors.ErrBranchNotFound
		}
		return BranchResponse{}, err
	}

	if req.Name != "" && req.Name != b.Name {
		if _, err := s.repo.FindBranchByName(ctx, req.Name); err == nil {
			return BranchResponse{}, brancherrors.ErrDuplicateBranchName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, err
		}
		b.Name = req.Name
	}
	if req.Address != "" {
		b.Address = req.Address
	}
	if req.City != "" {
		b.City = req.City
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateBranch(ctx, b); err != nil {
		return BranchResponse{}, err
	}
	return mapToResponse(*b), nil
}

func mapToResponse(b Branch) BranchResponse {
	resp := BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		CountryID: b.CountryID.String(),
		IsActive:  b.IsActive,
	}
	if b.Country != nil {
		resp.CountryName = b.Country.Name
	}
	return resp
}
