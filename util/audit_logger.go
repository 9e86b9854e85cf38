package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/NabinIslam/docport-server/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of security/audit events
type AuditEventType string

const (
	EventTokenIssued        AuditEventType = "TOKEN_ISSUED"
	EventTokenDenied        AuditEventType = "TOKEN_DENIED"
	EventUnauthorizedAccess AuditEventType = "UNAUTHORIZED_ACCESS"
	EventForbiddenAccess    AuditEventType = "FORBIDDEN_ACCESS"
	EventRoleChanged        AuditEventType = "ROLE_CHANGED"
	EventDoctorRegistered   AuditEventType = "DOCTOR_REGISTERED"
	EventDoctorRemoved      AuditEventType = "DOCTOR_REMOVED"
	EventRateLimitExceeded  AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall       AuditEventType = "ENDPOINT_CALL"
)

// AuditEvent represents a security/audit event to be logged
type AuditEvent struct {
	EventType AuditEventType
	Email     string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent writes the event to stdout and persists it when a DB handle
// has been set. Persistence is best-effort: a failed write never fails the
// request that produced the event.
func LogAuditEvent(event AuditEvent) {
	msg := fmt.Sprintf("Event=%s Email=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.Email),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)
	if len(event.Details) > 0 {
		// Details are persisted as JSON, not interpolated into the log line,
		// to avoid log injection.
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	auditLogger.Println(msg)

	if auditDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.AuditLog{
		EventType: string(event.EventType),
		Email:     sanitizeLogValue(event.Email),
		IP:        sanitizeLogValue(event.IP),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := auditDB.Create(&entry).Error; err != nil {
		auditLogger.Printf("Failed to persist audit event: %v", err)
	}
}

// LogTokenIssued logs a successful token issuance
func LogTokenIssued(email, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventTokenIssued,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Access token issued",
	})
}

// LogTokenDenied logs a token request for an unknown account
func LogTokenDenied(email, ip string) {
	LogAuditEvent(AuditEvent{
		EventType: EventTokenDenied,
		Email:     email,
		IP:        ip,
		Message:   "Token requested for unknown account",
	})
}

// LogForbiddenAccess logs a rejected authorization attempt
func LogForbiddenAccess(email, ip, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventForbiddenAccess,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Forbidden: %s", reason),
	})
}

// LogRoleChanged logs a role promotion
func LogRoleChanged(actorEmail, targetID, newRole, ip string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRoleChanged,
		Email:     actorEmail,
		IP:        ip,
		Message:   fmt.Sprintf("Role of user %s changed to %s", targetID, newRole),
	})
}

// LogRateLimitExceeded logs when rate limiting blocks a request
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for %s", endpoint),
	})
}
