package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	EventSkillGapAnalyzed = "skill_gap_analyzed"
	EventResumeAnalyzed   = "resume_analyzed"
	EventSkillVerified    = "skill_verified"
)

type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes domain events through a hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) Notify(userID, eventType string, payload any) {
	if n == nil || n.hub == nil {
		return
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return
	}

	b, err := json.Marshal(Event{
		Type:      eventType,
		UserID:    strings.TrimSpace(userID),
		Payload:   payload,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Send(strings.TrimSpace(userID), b)
}
