package models

// TaskStatus define task status type
type TaskStatus string

const (
	TaskStatusLocked    TaskStatus = "LOCKED"
	TaskStatusClaimable TaskStatus = "CLAIMABLE"
	TaskStatusClaimed   TaskStatus = "CLAIMED"
)

type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Points      int        `json:"points"`
}

type TaskList struct {
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

func (t Task) IsClaimed() bool {
	return t.Status == TaskStatusClaimed
}
