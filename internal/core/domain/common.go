package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedAt doubles as the system insertion timestamp and is the tie-break
// sort key when caller-supplied dates collide.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
