package models

import "gorm.io/datatypes"

// QuizSession persists a quiz state snapshot between requests.
type QuizSession struct {
	BaseModel
	Snapshot        datatypes.JSON `gorm:"type:jsonb" json:"snapshot"`
	Recommendations datatypes.JSON `gorm:"type:jsonb" json:"recommendations"`
}
