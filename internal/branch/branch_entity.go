package branch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Country struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_countries_name"`
	Code string    `gorm:"type:varchar(3);not null;uniqueIndex:uq_countries_code"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Country) TableName() string {
	return "countries"
}

type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_branches_name"`
	Address   string    `gorm:"type:text"`
	City      string    `gorm:"type:varchar(100)"`
	CountryID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive  bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Country *Country `gorm:"foreignKey:CountryID;references:ID"`
}

func (Branch) TableName() string {
	return "branches"
}
