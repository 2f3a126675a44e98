package model

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise is a single face-yoga exercise. Premium exercises are only
// viewable through a course the user holds access to.
// swagger:model Exercise
type Exercise struct {
	BaseModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Category        string     `gorm:"size:100;index" json:"category"`
	TargetArea      string     `gorm:"size:100" json:"targetArea"`
	Difficulty      Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	DurationSeconds int        `gorm:"default:60" json:"durationSeconds"`
	VideoURL        string     `gorm:"size:500" json:"videoUrl"`
	ImageURL        string     `gorm:"size:500" json:"imageUrl"`
	IsPremium       bool       `gorm:"default:false;index" json:"isPremium"`
	Published       bool       `gorm:"default:true" json:"published"`
}

func (Exercise) TableName() string {
	return "exercises"
}
