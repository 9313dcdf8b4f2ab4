package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/dermai/dermai/internal/domain/reference"
)

// Analysis is one saved skin-lesion analysis. LesionInfo and DoctorInfo are
// snapshots taken from the reference tables at save time; they are stored
// with the row and never re-derived on read.
type Analysis struct {
	ID         uuid.UUID            `json:"_id"`
	UserID     int                  `json:"userId"`
	Image      string               `json:"image"`
	LesionType string               `json:"lesionType"`
	LesionInfo reference.LesionInfo `json:"lesionInfo"`
	DoctorInfo reference.Doctor     `json:"doctorInfo"`
	CreatedAt  time.Time            `json:"createdAt"`
}
