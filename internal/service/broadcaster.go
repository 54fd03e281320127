package service

import "examforge/internal/model"

// Broadcaster interface for pushing notifications to a draft session's
// WebSocket subscribers (avoids import cycle with transport/ws)
type Broadcaster interface {
	NotifyDraft(draftID string, n model.Notification)
}

// noopBroadcaster is used when no hub is wired (tests, seed command)
type noopBroadcaster struct{}

func (noopBroadcaster) NotifyDraft(string, model.Notification) {}

// NopBroadcaster returns a Broadcaster that drops every notification
func NopBroadcaster() Broadcaster { return noopBroadcaster{} }
