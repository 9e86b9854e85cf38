package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog represents a persisted security/audit event.
type AuditLog struct {
	gorm.Model
	EventType string         `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	Email     string         `json:"email" gorm:"column:email;type:varchar(191);index"`
	IP        string         `json:"ip" gorm:"column:ip;type:varchar(45)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
