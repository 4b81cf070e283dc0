package models

import "time"

// Activity event types.
const (
	ActivityUserRegistered  = "USER_REGISTERED"
	ActivityUserLogin       = "USER_LOGIN"
	ActivityBookCreated     = "BOOK_CREATED"
	ActivityCategoryCreated = "CATEGORY_CREATED"
	ActivityReviewCreated   = "REVIEW_CREATED"
)

// ActivityEvent is a single entry of the append-only activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// CatalogStats is a point-in-time count of stored records.
type CatalogStats struct {
	Users      int       `json:"users"`
	Books      int       `json:"books"`
	Categories int       `json:"categories"`
	Reviews    int       `json:"reviews"`
	UpdatedAt  time.Time `json:"updated_at"`
}
