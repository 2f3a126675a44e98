package model

import "time"

// PracticeSession records one completed run of an exercise.
// swagger:model PracticeSession
type PracticeSession struct {
	BaseModel
	UserID          uint      `gorm:"index;not null" json:"userId"`
	ExerciseID      uint      `gorm:"index;not null" json:"exerciseId"`
	PracticedAt     time.Time `gorm:"not null;index" json:"practicedAt"`
	DurationSeconds int       `gorm:"default:0" json:"durationSeconds"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// ProgressPhoto is a user's before/after photo stored in object storage.
// swagger:model ProgressPhoto
type ProgressPhoto struct {
	BaseModel
	UserID     uint      `gorm:"index;not null" json:"userId"`
	ObjectName string    `gorm:"size:500;not null" json:"-"`
	PhotoURL   string    `gorm:"size:500;not null" json:"photoUrl"`
	TakenAt    time.Time `gorm:"not null" json:"takenAt"`
	Notes      string    `gorm:"type:text" json:"notes"`
}

func (ProgressPhoto) TableName() string {
	return "progress_photos"
}
