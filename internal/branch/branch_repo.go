package branch

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	CreateCountry(ctx context.Context, c *Country) error
	FindAllCountries(ctx context.Context) ([]Country, error)
	FindCountryByID(ctx context.Context, id string) (*Country, error)

	CreateBranch(ctx context.Context, b *Branch) error
	FindAllBranches(ctx context.Context) ([]Branch, error)
	FindBranchByID(ctx context.Context, id string) (*Branch, error)
	FindBranchByName(ctx context.Context, name string) (*Branch, error)
	UpdateBranch(ctx context.Context, b *Branch) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCountry(ctx context.Context, c *Country) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllCountries(ctx context.Context) ([]Country, error) {
	var countries []Country
	err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error
	return countries, err
}

func (r *repository) FindCountryByID(ctx context.Context, id string) (*Country, error) {
	var c Country
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) CreateBranch(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAllBranches(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	err := r.db.WithContext(ctx).
		Preload("Country").
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

func (r *repository) FindBranchByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	err := r.db.WithContext(ctx).
		Preload("Country").
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindBranchByName(ctx context.Context, name string) (*Branch, error) {
	var b Branch
	err := r.db.WithContext(ctx).First(&b, "name = ?", name).Error
	return &b, err
}

func (r *repository) UpdateBranch(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}
