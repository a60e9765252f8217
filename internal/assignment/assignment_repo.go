package assignment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *EmployeeLeaveScheme) error
	FindByID(ctx context.Context, id string) (*EmployeeLeaveScheme, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeLeaveScheme, error)
	FindOverlapping(ctx context.Context, employeeID string, from time.Time, to *time.Time) ([]EmployeeLeaveScheme, error)
	CurrentFor(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeLeaveScheme, error)
	Close(ctx context.Context, id string, effectiveTo time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *EmployeeLeaveScheme) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeLeaveScheme, error) {
	var a EmployeeLeaveScheme
	err := r.db.WithContext(ctx).
		Preload("Scheme").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeLeaveScheme, error) {
	var list []EmployeeLeaveScheme
	err := r.db.WithContext(ctx).
		Preload("Scheme").
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&list).Error
	return list, err
}

// FindOverlapping mencari assignment yang rentangnya beririsan dengan
// [from, to]. to nil diperlakukan sebagai tak berbatas ke depan.
func (r *repository) FindOverlapping(ctx context.Context, employeeID string, from time.Time, to *time.Time) ([]EmployeeLeaveScheme, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_to IS NULL OR effective_to >= ?", from)
	if to != nil {
		q = q.Where("effective_from <= ?", *to)
	}

	var list []EmployeeLeaveScheme
	err := q.Find(&list).Error
	return list, err
}

// CurrentFor memilih assignment yang aktif pada tanggal asOf. Kalau ada
// lebih dari satu kandidat, yang terakhir dibuat menang.
func (r *repository) CurrentFor(ctx context.Context, employeeID string, asOf time.Time) (*EmployeeLeaveScheme, error) {
	var a EmployeeLeaveScheme
	err := r.db.WithContext(ctx).
		Preload("Scheme").
		Preload("Scheme.LeaveTypes").
		Where("employee_id = ?", employeeID).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Order("created_at DESC").
		First(&a).Error
	return &a, err
}

func (r *repository) Close(ctx context.Context, id string, effectiveTo time.Time) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeLeaveScheme{}).
		Where("id = ?", id).
		Update("effective_to", effectiveTo).Error
}
