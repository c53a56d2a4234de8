package audit

import "time"

// Entry is one append-only audit record of an accepted event or privileged
// action.
type Entry struct {
	ID           string
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]interface{}
	IPAddress    *string
	UserAgent    *string
	CreatedAt    time.Time
}

type Filter struct {
	ActorID      *string
	ResourceType *string
	StartDate    *string
	EndDate      *string

	Page  int
	Limit int
}

type EntryResponse struct {
	ID           string                 `json:"id"`
	ActorID      string                 `json:"actor_id"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id"`
	Details      map[string]interface{} `json:"details,omitempty"`
	IPAddress    *string                `json:"ip_address,omitempty"`
	UserAgent    *string                `json:"user_agent,omitempty"`
	CreatedAt    string                 `json:"created_at"`
}

func MapEntryToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		ActorID:      e.ActorID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
