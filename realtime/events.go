// File: realtime/events.go
package realtime

// Server-pushed event kinds. These names are the wire contract with every connected
// client; renaming one is a breaking change.
const (
	EventNewMessage          = "newMessage"
	EventConversationClosed  = "conversationClosed"
	EventUserTyping          = "userTyping"
	EventAppointmentUpdated  = "appointmentUpdated"
	EventAppointmentDeleted  = "appointmentDeleted"
	EventUserUpdated         = "userUpdated"
	EventUserDeleted         = "userDeleted"
	EventServiceAdded        = "serviceAdded"
	EventServiceUpdated      = "serviceUpdated"
	EventServiceDeleted      = "serviceDeleted"
	EventBookingStatusUpdate = "bookingStatusUpdate"
	EventNewBookingAssigned  = "newBookingAssigned"
	EventNewAdminReply       = "newAdminReply"
	EventFeedbackSubmitted   = "feedbackSubmitted"
	EventSubscriptionWarning = "subscriptionWarning"
	EventSubscriptionUpdated = "subscriptionUpdated"
	EventStatsUpdated        = "statsUpdated"
	EventFeedbacksUpdated    = "feedbacksUpdated"
)

// Client-emitted control events.
const (
	EventJoinRoom  = "joinRoom"
	EventLeaveRoom = "leaveRoom"
)

// AdminRoom is the shared room admin sessions may join in addition to their own.
const AdminRoom = "admins"

// BroadcastRoom addresses every connected client, regardless of room membership.
// Used for catalog changes that all sessions render.
const BroadcastRoom = "*"

// Frame is the JSON envelope exchanged on the websocket in both directions.
type Frame struct {
	Event string `json:"event"`
	Room  string `json:"room,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Publisher pushes events into per-user rooms. Services depend on this interface so
// tests can capture emissions without a live hub.
type Publisher interface {
	Emit(room, event string, data any)
	EmitAdmins(event string, data any)
	Broadcast(event string, data any)
}
