package models

import "time"

// Message senders within a support conversation.
const (
	SenderUser  = "user"
	SenderModel = "model"
	SenderAdmin = "admin"
)

// Conversation statuses.
const (
	ConversationOpen   = "open"
	ConversationClosed = "closed"
)

// Conversation is a customer's single support thread, created lazily on first fetch.
// While AdminActive is set, assistant replies are suppressed and a human admin owns
// the thread.
type Conversation struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  string    `bson:"customer_id" json:"customerId"`
	Status      string    `bson:"status" json:"status"`
	AdminActive bool      `bson:"admin_active" json:"adminActive"`
	Messages    []Message `bson:"messages" json:"messages"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Message is one entry in a conversation. ClientID is the client-generated
// correlation id echoed back so optimistic entries are matched by id rather than
// by (sender, text) value equality.
type Message struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"client_id,omitempty" json:"clientId,omitempty"`
	Sender    string    `bson:"sender" json:"sender"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
