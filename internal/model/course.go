package model

type CourseAccessType string

const (
	AccessLifetime     CourseAccessType = "lifetime"
	AccessSubscription CourseAccessType = "subscription"
	AccessTrial        CourseAccessType = "trial"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title                      string           `gorm:"size:255;not null" json:"title"`
	Description                string           `gorm:"type:text" json:"description"`
	ImageURL                   string           `gorm:"size:500" json:"imageUrl"`
	PriceCents                 int64            `gorm:"not null;default:0" json:"priceCents"`
	AccessType                 CourseAccessType `gorm:"size:20;default:'lifetime'" json:"accessType"`
	TrialDurationDays          int              `gorm:"default:0" json:"trialDurationDays"`
	SubscriptionDurationMonths int              `gorm:"default:0" json:"subscriptionDurationMonths"`
	Published                  bool             `gorm:"default:false" json:"published"`

	Sections []CourseSection `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// IsFree reports whether the course grants access without a purchase.
func (c *Course) IsFree() bool {
	return c.PriceCents == 0
}

// swagger:model CourseSection
type CourseSection struct {
	BaseModel
	CourseID   uint   `gorm:"index;not null" json:"courseId"`
	Title      string `gorm:"size:255;not null" json:"title"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`

	Exercises []SectionExercise `gorm:"foreignKey:SectionID" json:"exercises,omitempty"`
}

func (CourseSection) TableName() string {
	return "course_sections"
}

// SectionExercise links an exercise into a course section, ordered.
type SectionExercise struct {
	BaseModel
	SectionID  uint `gorm:"index;not null;uniqueIndex:idx_section_exercise" json:"sectionId"`
	ExerciseID uint `gorm:"index;not null;uniqueIndex:idx_section_exercise" json:"exerciseId"`
	OrderIndex int  `gorm:"default:0" json:"orderIndex"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

func (SectionExercise) TableName() string {
	return "section_exercises"
}
