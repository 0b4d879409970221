package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DeveloperChangedEvent struct {
	Type      string    `json:"type"`
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp string    `json:"timestamp"`
}

// Notifier publishes developer changes to every connected client.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) NotifyDeveloperChanged(action string, id, ownerID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	evt := DeveloperChangedEvent{
		Type:      "developer_" + action,
		ID:        id,
		UserID:    ownerID,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Warn("ws event encode failed", zap.Error(err))
		return
	}
	n.hub.Broadcast(b)
}
