package model

type GoalProgressStatus string

const (
	GoalNotStarted GoalProgressStatus = "not_started"
	GoalInProgress GoalProgressStatus = "in_progress"
	GoalCompleted  GoalProgressStatus = "completed"
	GoalPaused     GoalProgressStatus = "paused"
)

// Goal is an admin-defined outcome ("Sculpted jawline") users work toward
// by practicing exercises mapped to it.
// swagger:model Goal
type Goal struct {
	BaseModel
	Label       string `gorm:"size:255;not null" json:"label"`
	Description string `gorm:"type:text" json:"description"`

	Milestones []Milestone `gorm:"foreignKey:GoalID" json:"milestones,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

// Milestone is a progress threshold on a goal.
// swagger:model Milestone
type Milestone struct {
	BaseModel
	GoalID       uint `gorm:"index;not null" json:"goalId"`
	TargetValue  int  `gorm:"not null" json:"targetValue"`
	RewardPoints int  `gorm:"default:0" json:"rewardPoints"`
	OrderIndex   int  `gorm:"default:0" json:"orderIndex"`
}

func (Milestone) TableName() string {
	return "milestones"
}

// GoalProgress accumulates contribution weights per (user, goal).
// MilestoneReached is derived: it always equals the number of milestones
// whose target value is at or below ProgressValue.
// swagger:model GoalProgress
type GoalProgress struct {
	BaseModel
	UserID           uint               `gorm:"not null;uniqueIndex:idx_user_goal_progress" json:"userId"`
	GoalID           uint               `gorm:"not null;uniqueIndex:idx_user_goal_progress" json:"goalId"`
	ProgressValue    int                `gorm:"default:0" json:"progressValue"`
	MilestoneReached int                `gorm:"default:0" json:"milestoneReached"`
	Status           GoalProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`
}

func (GoalProgress) TableName() string {
	return "goal_progress"
}

// ExerciseGoalWeight maps an exercise to the points its completion
// contributes toward a goal.
type ExerciseGoalWeight struct {
	BaseModel
	ExerciseID uint `gorm:"not null;uniqueIndex:idx_exercise_goal" json:"exerciseId"`
	GoalID     uint `gorm:"not null;uniqueIndex:idx_exercise_goal" json:"goalId"`
	Weight     int  `gorm:"not null;default:1" json:"weight"`
}

func (ExerciseGoalWeight) TableName() string {
	return "exercise_goal_weights"
}
