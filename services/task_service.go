package services

import (
	"fmt"
	"github.com/yahengsu/bullpen/helpers"
	"github.com/yahengsu/bullpen/models"
	"sync"
	"time"
)

// TaskService tracks the daily and weekly reward lists. Claims are one way:
// Claimable becomes Claimed, Locked tasks cannot be claimed.
type TaskService struct {
	lists           []models.TaskList
	animationWindow time.Duration
	claimedAt       map[string]time.Time
	now             func() time.Time
	mutex           sync.Mutex
}

func NewTaskService(lists []models.TaskList, animationWindow time.Duration) *TaskService {
	return &TaskService{
		lists:           copyTaskLists(lists),
		animationWindow: animationWindow,
		claimedAt:       make(map[string]time.Time),
		now:             time.Now,
	}
}

func DefaultTaskLists() []models.TaskList {
	return []models.TaskList{
		{
			Title: "Daily Tasks",
			Tasks: []models.Task{
				{ID: "d1", Description: "Daily Check In", Status: models.TaskStatusClaimable, Points: 1},
				{ID: "d2", Description: "Read Daily Digest", Status: models.TaskStatusClaimable, Points: 10},
				{ID: "d3", Description: "Post in Discord", Status: models.TaskStatusClaimed, Points: 15},
			},
		},
		{
			Title: "Weekly Tasks",
			Tasks: []models.Task{
				{ID: "w1", Description: "Weekly Check In", Status: models.TaskStatusClaimable, Points: 50},
				{ID: "w2", Description: "Trade on Bullpen", Status: models.TaskStatusLocked, Points: 100},
				{ID: "w3", Description: "Interact with Partner Protocol", Status: models.TaskStatusClaimed, Points: 1},
			},
		},
	}
}

// Toggle claims the task when it is claimable and reports whether it did
func (ts *TaskService) Toggle(id string) bool {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	for i := range ts.lists {
		for j := range ts.lists[i].Tasks {
			task := &ts.lists[i].Tasks[j]
			if task.ID != id {
				continue
			}
			if task.Status != models.TaskStatusClaimable {
				return false
			}
			task.Status = models.TaskStatusClaimed
			ts.claimedAt[id] = ts.now()
			helpers.Logger.Infoln(fmt.Sprintf("Task claimed: %s (+%d)", task.Description, task.Points))
			return true
		}
	}
	return false
}

// IsAnimating is true for a short window after the task was claimed
func (ts *TaskService) IsAnimating(id string) bool {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	claimedAt, ok := ts.claimedAt[id]
	if !ok {
		return false
	}
	if ts.now().Sub(claimedAt) >= ts.animationWindow {
		delete(ts.claimedAt, id)
		return false
	}
	return true
}

func (ts *TaskService) Score() int {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	score := 0
	for _, list := range ts.lists {
		for _, task := range list.Tasks {
			if task.IsClaimed() {
				score += task.Points
			}
		}
	}
	return score
}

func (ts *TaskService) Lists() []models.TaskList {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	return copyTaskLists(ts.lists)
}

func (ts *TaskService) Task(id string) (models.Task, bool) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	for _, list := range ts.lists {
		for _, task := range list.Tasks {
			if task.ID == id {
				return task, true
			}
		}
	}
	return models.Task{}, false
}

func copyTaskLists(lists []models.TaskList) []models.TaskList {
	result := make([]models.TaskList, len(lists))
	for i, list := range lists {
		result[i] = models.TaskList{Title: list.Title, Tasks: make([]models.Task, len(list.Tasks))}
		copy(result[i].Tasks, list.Tasks)
	}
	return result
}
