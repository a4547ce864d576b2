package model

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	Id        uint           `gorm:"primaryKey;autoIncrement"`
	EventType string         `gorm:"type:varchar(50);not null;index"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
