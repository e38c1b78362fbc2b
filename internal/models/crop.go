package models

type Crop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type CropTask struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Month string `gorm:"size:20;not null" json:"month"`
	Task  string `gorm:"type:text;not null" json:"task"`

	CropID uint `gorm:"not null" json:"crop_id"`
	Crop   Crop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
