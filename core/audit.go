package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventLogger records gate decisions to an external sink.
// Implementations should be non-blocking and best-effort.
type EventLogger interface {
	LogDecision(ctx context.Context, companyID, userID uuid.UUID, surface, decision string)
}

// LogrusEvents is an EventLogger writing structured entries to a logrus
// logger.
type LogrusEvents struct {
	L *logrus.Logger
}

func (e LogrusEvents) LogDecision(_ context.Context, companyID, userID uuid.UUID, surface, decision string) {
	if e.L == nil {
		return
	}
	e.L.WithFields(logrus.Fields{
		"company_id": companyID,
		"user_id":    userID,
		"surface":    surface,
		"decision":   decision,
	}).Info("gate decision")
}
