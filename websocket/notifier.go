package websocket

import "time"

// defaultHub is the process-wide notification hub. Notify is a no-op until
// InitHub has run, which keeps handlers testable without a hub.
var defaultHub *Hub

// InitHub creates and starts the default notification hub
func InitHub() *Hub {
	defaultHub = NewHub()
	go defaultHub.Run()
	return defaultHub
}

// Notify pushes a typed event to one user, if connected
func Notify(userID uint, event string, data interface{}) {
	if defaultHub == nil {
		return
	}
	defaultHub.SendToUser(userID, &Message{
		Type:      event,
		Data:      data,
		Timestamp: time.Now(),
	})
}
