package domain

const (
	MinPriority = 1
	MaxPriority = 5
)

// Todo is a single task item. OwnerID is fixed at creation.
type Todo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     uint64 `json:"owner_id"`
}

// ValidPriority reports whether p lies in [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}
