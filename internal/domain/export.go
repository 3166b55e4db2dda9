package domain

import (
	"time"

	"github.com/google/uuid"
)

// Export job statuses.
const (
	ExportCompleted = "completed"
	ExportRejected  = "rejected"
	ExportFailed    = "failed"
)

// ExportJob is the audit record of one export attempt. It carries
// operational metadata only; the document itself is never persisted.
type ExportJob struct {
	ID        uuid.UUID              `json:"id"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
