package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata row for one uploaded patient PDF. StoredName is
// the blob key (`<unix-millis>-<original-name>`); URL is derived from it at
// read time and not persisted.
type Document struct {
	ID         uuid.UUID `json:"_id"`
	UserID     int       `json:"userId"`
	Filename   string    `json:"filename"`
	StoredName string    `json:"-"`
	Size       int64     `json:"size"`
	UploadedBy int       `json:"uploadedBy,omitempty"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
}
