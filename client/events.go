package client

// Server-pushed event names. These mirror the wire contract; handlers are bound
// to them through Router.Bind.
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
