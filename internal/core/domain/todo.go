package domain

type TodoStatus int

const (
	TodoStatusIncomplete TodoStatus = iota
	TodoStatusCompleted
)

func (s TodoStatus) Completed() bool {
	return s == TodoStatusCompleted
}

func (s TodoStatus) String() string {
	if s == TodoStatusCompleted {
		return "completed"
	}
	return "incomplete"
}

// StatusFromCompleted maps the wire-level completed flag onto the status enum.
func StatusFromCompleted(completed bool) TodoStatus {
	if completed {
		return TodoStatusCompleted
	}
	return TodoStatusIncomplete
}

type Todo struct {
	ID     int64
	Text   string
	Status TodoStatus
	UserID string
}

// ChangeStatus returns a copy with the new status; id, text and owner never change.
func (t Todo) ChangeStatus(status TodoStatus) Todo {
	t.Status = status
	return t
}

func (t Todo) BelongsTo(userID string) bool {
	return t.UserID == userID
}
