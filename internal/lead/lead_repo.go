package lead

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=lead_repo.go -destination=mock/lead_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	FindAll(ctx context.Context, filter ListFilter) ([]Lead, int64, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, l *Lead) error
}

type ListFilter struct {
	Status     string
	AssignedTo string
	Search     string
	Limit      int
	Offset     int
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Lead, int64, error) {
	db := r.db.WithContext(ctx).Model(&Lead{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != "" {
		db = db.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR contact ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []Lead
	err := db.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&leads).Error
	return leads, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}
