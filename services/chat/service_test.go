package chat

import (
	"context"
	"errors"
	"testing"

	"homely/models"
	"homely/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeConversationRepo struct {
	conversations map[string]*models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[string]*models.Conversation)}
}

func (r *fakeConversationRepo) Create(conv *models.Conversation) error {
	cp := *conv
	r.conversations[conv.ID] = &cp
	return nil
}

func (r *fakeConversationRepo) GetByCustomer(customerID string) (*models.Conversation, error) {
	for _, c := range r.conversations {
		if c.CustomerID == customerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) GetByID(id string) (*models.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) GetOpen() ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range r.conversations {
		if c.Status == models.ConversationOpen {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) AppendMessage(id string, message models.Message) error {
	c, ok := r.conversations[id]
	if !ok {
		return errors.New("not found")
	}
	c.Messages = append(c.Messages, message)
	return nil
}

func (r *fakeConversationRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	c, ok := r.conversations[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := updateDoc["status"]; ok {
		c.Status = v.(string)
	}
	if v, ok := updateDoc["admin_active"]; ok {
		c.AdminActive = v.(bool)
	}
	return nil
}

type emission struct {
	Room  string
	Event string
	Data  any
}

type fakeHub struct {
	emissions []emission
}

func (h *fakeHub) Emit(room, event string, data any) {
	h.emissions = append(h.emissions, emission{Room: room, Event: event, Data: data})
}

func (h *fakeHub) EmitAdmins(event string, data any) {
	h.emissions = append(h.emissions, emission{Room: "admins", Event: event, Data: data})
}

func (h *fakeHub) Broadcast(event string, data any) {
	h.emissions = append(h.emissions, emission{Room: "*", Event: event, Data: data})
}

func (h *fakeHub) events(room string) []string {
	var out []string
	for _, e := range h.emissions {
		if e.Room == room {
			out = append(out, e.Event)
		}
	}
	return out
}

type fakeNotifications struct {
	recorded []string
}

func (n *fakeNotifications) Record(ctx context.Context, userID, notifType, message string, data map[string]any) (*models.Notification, error) {
	n.recorded = append(n.recorded, notifType)
	return &models.Notification{UserID: userID, Type: notifType, Message: message}, nil
}

func (n *fakeNotifications) Recent(userID string) ([]models.Notification, error) { return nil, nil }
func (n *fakeNotifications) MarkRead(userID, id string) error                    { return nil }
func (n *fakeNotifications) Clear(userID string) error                           { return nil }

type fakeAssistant struct {
	reply string
	err   error
	calls int
}

func (a *fakeAssistant) Reply(ctx context.Context, customerID, text string) (string, error) {
	a.calls++
	return a.reply, a.err
}

func newTestService() (*DefaultChatService, *fakeConversationRepo, *fakeHub, *fakeAssistant, *fakeNotifications) {
	repo := newFakeConversationRepo()
	hub := &fakeHub{}
	assistant := &fakeAssistant{reply: "how can I help?"}
	notifs := &fakeNotifications{}
	svc := &DefaultChatService{
		Repo:         repo,
		Assistant:    assistant,
		Notification: notifs,
		Hub:          hub,
	}
	return svc, repo, hub, assistant, notifs
}

func TestGetOrCreateConversation_Lazy(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, models.ConversationOpen, conv.Status)
	assert.False(t, conv.AdminActive)

	again, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID, "second fetch must return the same thread")
}

func TestSendMessage_EchoesClientID(t *testing.T) {
	svc, repo, hub, _, _ := newTestService()
	// Admin holds the thread so no assistant goroutine races the assertions.
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSetDocument(conv.ID, bson.M{"admin_active": true}))

	msg, err := svc.SendMessage(context.Background(), "cust-1", SendRequest{ClientID: "opt-42", Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "opt-42", msg.ClientID)
	assert.Equal(t, models.SenderUser, msg.Sender)
	assert.NotEmpty(t, msg.ID)

	stored, _ := repo.GetByID(conv.ID)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "opt-42", stored.Messages[0].ClientID)

	assert.Contains(t, hub.events("cust-1"), realtime.EventNewMessage)
	assert.Contains(t, hub.events("admins"), realtime.EventNewMessage)
}

func TestSendMessage_ReopensClosedThread(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSetDocument(conv.ID, bson.M{"status": models.ConversationClosed, "admin_active": true}))

	_, err = svc.SendMessage(context.Background(), "cust-1", SendRequest{Text: "hello again"})
	require.NoError(t, err)

	stored, _ := repo.GetByID(conv.ID)
	assert.Equal(t, models.ConversationOpen, stored.Status)
}

func TestSendMessage_NoAssistantWhileAdminActive(t *testing.T) {
	svc, repo, _, assistant, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSetDocument(conv.ID, bson.M{"admin_active": true}))

	_, err = svc.SendMessage(context.Background(), "cust-1", SendRequest{Text: "hi"})
	require.NoError(t, err)

	assert.Zero(t, assistant.calls)
}

func TestAssistantReply_AppendsModelMessage(t *testing.T) {
	svc, repo, hub, _, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	svc.assistantReply(context.Background(), conv.ID, "cust-1", "hi")

	stored, _ := repo.GetByID(conv.ID)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, models.SenderModel, stored.Messages[0].Sender)
	assert.Equal(t, "how can I help?", stored.Messages[0].Text)
	assert.Contains(t, hub.events("cust-1"), realtime.EventNewMessage)
}

func TestAssistantReply_FailureAppendsFallback(t *testing.T) {
	svc, repo, _, assistant, _ := newTestService()
	assistant.err = errors.New("model unavailable")
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	svc.assistantReply(context.Background(), conv.ID, "cust-1", "hi")

	stored, _ := repo.GetByID(conv.ID)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, models.SenderModel, stored.Messages[0].Sender)
	assert.Equal(t, assistantFallback, stored.Messages[0].Text)
}

func TestAdminReply_TakesThreadOver(t *testing.T) {
	svc, repo, hub, _, notifs := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	msg, err := svc.AdminReply(context.Background(), conv.ID, "an agent here")
	require.NoError(t, err)
	assert.Equal(t, models.SenderAdmin, msg.Sender)

	stored, _ := repo.GetByID(conv.ID)
	assert.True(t, stored.AdminActive)

	assert.Contains(t, hub.events("cust-1"), realtime.EventNewAdminReply)
	assert.Contains(t, notifs.recorded, "admin_reply")
}

func TestAdminReply_UnknownConversation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.AdminReply(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseAdmin_RestoresAssistant(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	_, err = svc.AdminReply(context.Background(), conv.ID, "taking over")
	require.NoError(t, err)
	require.NoError(t, svc.ReleaseAdmin(conv.ID))

	stored, _ := repo.GetByID(conv.ID)
	assert.False(t, stored.AdminActive)
}

func TestCloseConversation(t *testing.T) {
	svc, repo, hub, _, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	require.NoError(t, svc.CloseConversation(conv.ID))

	stored, _ := repo.GetByID(conv.ID)
	assert.Equal(t, models.ConversationClosed, stored.Status)
	assert.False(t, stored.AdminActive)
	assert.Contains(t, hub.events("cust-1"), realtime.EventConversationClosed)
}

func TestRelayTyping_Directional(t *testing.T) {
	svc, _, hub, _, _ := newTestService()
	conv, err := svc.GetOrCreateConversation("cust-1")
	require.NoError(t, err)

	require.NoError(t, svc.RelayTyping(conv.ID, models.SenderUser))
	assert.Contains(t, hub.events("admins"), realtime.EventUserTyping)

	require.NoError(t, svc.RelayTyping(conv.ID, models.SenderAdmin))
	assert.Contains(t, hub.events("cust-1"), realtime.EventUserTyping)
}
