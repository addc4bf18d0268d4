// Package transport defines the wire DTOs for the audit log.
package transport

import "time"

// ListRequest is the query-string contract for GET /admin/audit.
// When From and To are both absent, the service defaults to the last 7 days.
type ListRequest struct {
	Skip   int        `form:"skip" validate:"omitempty,min=0"`
	Limit  int        `form:"limit" validate:"omitempty,min=1,max=100"`
	Action string     `form:"action" validate:"omitempty,max=100"`
	Actor  string     `form:"actor" validate:"omitempty,uuid"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
}

// Entry is one recorded audit event.
type Entry struct {
	ID        int64                  `json:"id"`
	ActorID   string                 `json:"actor_id"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ListResponse is the paginated envelope for audit entries.
type ListResponse struct {
	Items []Entry `json:"items"`
	Total int     `json:"total"`
}
