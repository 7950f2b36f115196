package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UsageRecord captures one proxied forecast request. Resolved holds the
// location block weatherapi.com echoed back, so ambiguous queries ("paris")
// can be audited against what the API actually matched.
type UsageRecord struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TS       time.Time      `gorm:"index" json:"ts"`
	RemoteIP string         `json:"remote_ip"`
	Location string         `gorm:"index" json:"location"`
	Status   int            `json:"status"`
	CacheHit bool           `json:"cache_hit"`
	Resolved datatypes.JSON `gorm:"type:jsonb" json:"resolved,omitempty"`
}
