package entity

import "time"

type AuditLog struct {
	Id        uint
	EventType string
	Details   map[string]interface{}
	CreatedAt time.Time
}
