package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	ListRoles() ([]CustomRole, error)
	FindByID(id string) (*CustomRole, error)
	FindByName(name string) (*CustomRole, error)
	Create(role *CustomRole) error
	Update(role *CustomRole) error
	Delete(id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRoles() ([]CustomRole, error) {
	var roles []CustomRole
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *repository) FindByID(id string) (*CustomRole, error) {
	var role CustomRole
	err := r.db.First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindByName(name string) (*CustomRole, error) {
	var role CustomRole
	err := r.db.First(&role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) Create(role *CustomRole) error {
	return r.db.Create(role).Error
}

func (r *repository) Update(role *CustomRole) error {
	return r.db.Save(role).Error
}

func (r *repository) Delete(id string) error {
	return r.db.Delete(&CustomRole{}, "id = ?", id).Error
}
