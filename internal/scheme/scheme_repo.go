package scheme

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=scheme_repo.go -destination=mock/scheme_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *LeaveScheme) error
	FindAll(ctx context.Context) ([]LeaveScheme, error)
	FindByID(ctx context.Context, id string) (*LeaveScheme, error)
	FindByName(ctx context.Context, name string) (*LeaveScheme, error)
	Update(ctx context.Context, s *LeaveScheme) error
	Delete(ctx context.Context, id string) error

	CountAttachments(ctx context.Context, schemeID string) (int64, error)
	CreateAttachment(ctx context.Context, a *SchemeLeaveType) error
	FindAttachment(ctx context.Context, schemeID, leaveTypeID string) (*SchemeLeaveType, error)
	DeleteAttachment(ctx context.Context, schemeID, leaveTypeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, s *LeaveScheme) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveScheme, error) {
	var schemes []LeaveScheme
	err := r.db.WithContext(ctx).
		Preload("LeaveTypes").
		Preload("LeaveTypes.LeaveType").
		Order("name ASC").
		Find(&schemes).Error
	return schemes, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveScheme, error) {
	var s LeaveScheme
	err := r.db.WithContext(ctx).
		Preload("LeaveTypes").
		Preload("LeaveTypes.LeaveType").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveScheme, error) {
	var s LeaveScheme
	err := r.db.WithContext(ctx).First(&s, "name = ?", name).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *LeaveScheme) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveScheme{}, "id = ?", id).Error
}

func (r *repository) CountAttachments(ctx context.Context, schemeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SchemeLeaveType{}).
		Where("scheme_id = ?", schemeID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateAttachment(ctx context.Context, a *SchemeLeaveType) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAttachment(ctx context.Context, schemeID, leaveTypeID string) (*SchemeLeaveType, error) {
	var a SchemeLeaveType
	err := r.db.WithContext(ctx).
		Where("scheme_id = ?", schemeID).
		Where("leave_type_id = ?", leaveTypeID).
		First(&a).Error
	return &a, err
}

func (r *repository) DeleteAttachment(ctx context.Context, schemeID, leaveTypeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("scheme_id = ?", schemeID).
		Where("leave_type_id = ?", leaveTypeID).
		Delete(&SchemeLeaveType{})
	return res.RowsAffected, res.Error
}
