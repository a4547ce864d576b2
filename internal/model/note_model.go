package model

import "time"

type Note struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(256);not null"`
	Body      string    `gorm:"type:text;not null"`
	IsDeleted bool      `gorm:"not null;default:false;index"`
	UserId    uint      `gorm:"not null;index"`
	User      *User     `gorm:"foreignKey:UserId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
