package client

import "time"

// UpsertByID merges an incoming entity into a collection: an existing entity
// with the same id is replaced in place (order preserved), otherwise the entity
// is appended.
func UpsertByID[T any](list []T, item T, idOf func(T) string) []T {
	id := idOf(item)
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

// DeleteByID removes the entity with the given id. Unknown ids are a no-op, so
// replayed deletes are harmless.
func DeleteByID[T any](list []T, id string, idOf func(T) string) []T {
	for i := range list {
		if idOf(list[i]) == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Message is a chat entry as the SDK holds it. Optimistic entries are local
// placeholders shown before the server confirms them; ClientID is the
// correlation id generated at send time and echoed back by the server.
type Message struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"clientId,omitempty"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	Optimistic bool      `json:"-"`
}

// ReconcileMessage merges a confirmed message into the thread. The optimistic
// placeholder is matched by ClientID when the server echoed one; without a
// ClientID the match falls back to (sender, text) equality, removing every
// optimistic entry that matches before appending the confirmed message.
func ReconcileMessage(list []Message, confirmed Message) []Message {
	out := list[:0]
	for _, m := range list {
		if !m.Optimistic {
			out = append(out, m)
			continue
		}
		if confirmed.ClientID != "" {
			if m.ClientID == confirmed.ClientID {
				continue
			}
		} else if m.Sender == confirmed.Sender && m.Text == confirmed.Text {
			continue
		}
		out = append(out, m)
	}
	return append(out, confirmed)
}
