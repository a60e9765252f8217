package rbac

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CustomRole menyimpan daftar permission sebagai text[].
// Format permission: "resource.action", atau "resource" saja untuk
// semua aksi pada resource itu. "*" berarti semua resource.
type CustomRole struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(50);not null;uniqueIndex:uq_custom_roles_name"`
	Description string         `gorm:"type:text"`
	Permissions pq.StringArray `gorm:"type:text[];not null"`
	IsBuiltin   bool           `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CustomRole) TableName() string {
	return "custom_roles"
}
