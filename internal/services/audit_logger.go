package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// LogAuditLogger implements domain.AuditLogger by writing structured lines
// to the process log. Marshal failures degrade to a plain line instead of
// dropping the event.
type LogAuditLogger struct{}

// NewAuditLogger creates a log-backed audit logger
func NewAuditLogger() domain.AuditLogger {
	return &LogAuditLogger{}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("AUDIT %s user_id=%d success=%t", event.EventType, event.UserID, event.Success)
		return nil
	}
	log.Printf("AUDIT %s", payload)
	return nil
}
