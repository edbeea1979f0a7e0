package model

// RemoveQuery names the entities to remove. An empty name is accepted and
// matches only entities stored with an empty name.
type RemoveQuery struct {
	Name string `form:"name"`
}

// RemoveResult reports how many entries a remove matched.
type RemoveResult struct {
	Name    string `json:"name"`
	Removed int    `json:"removed"`
}

type HospitalInfo struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
}

// ListItem pairs an entity with its rendered display line.
type ListItem[T any] struct {
	Entry   T      `json:"entry"`
	Summary string `json:"summary"`
}
