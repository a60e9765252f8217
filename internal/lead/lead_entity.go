package lead

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusQualified = "QUALIFIED"
	StatusConverted = "CONVERTED"
	StatusDropped   = "DROPPED"
)

// allowedTransitions memetakan status asal ke status tujuan yang sah.
// CONVERTED dan DROPPED adalah status akhir.
var allowedTransitions = map[string][]string{
	StatusNew:       {StatusContacted, StatusDropped},
	StatusContacted: {StatusQualified, StatusDropped},
	StatusQualified: {StatusConverted, StatusDropped},
}

func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return status == StatusConverted || status == StatusDropped
}

type Lead struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"size:255;not null"`
	Contact string    `gorm:"size:255;not null"`
	Source  string    `gorm:"size:100"`
	Status  string    `gorm:"size:20;not null;default:'NEW'"`
	// AssignedTo menunjuk employee sales yang memegang lead ini.
	AssignedTo *uuid.UUID `gorm:"type:uuid;index"`
	// PreviousLeadID terisi kalau lead ini hasil reenquiry dari lead lama.
	PreviousLeadID *uuid.UUID `gorm:"type:uuid"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Lead) TableName() string {
	return "leads"
}
