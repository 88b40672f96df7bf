package conversationRepo

import (
	"homely/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ConversationRepository defines persistence operations for support conversations.
type ConversationRepository interface {
	Create(conversation *models.Conversation) error
	GetByCustomer(customerID string) (*models.Conversation, error)
	GetByID(id string) (*models.Conversation, error)
	GetOpen() ([]models.Conversation, error)
	AppendMessage(id string, message models.Message) error
	UpdateSetDocument(id string, updateDoc bson.M) error
}
