package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	// Upsert menimpa status kalau (employee_id, date) sudah ada.
	Upsert(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	CountByStatus(ctx context.Context, employeeID string, from, to time.Time) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "note", "marked_by", "updated_at",
			}),
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date).
		First(&a).Error
	return &a, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var list []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var list []Attendance
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&list).Error
	return list, err
}

func (r *repository) CountByStatus(ctx context.Context, employeeID string, from, to time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select("status, COUNT(*) AS total").
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Total
	}
	return result, nil
}
