package model

import "time"

const (
	EntityName = "chat"

	SenderMe     = "me"
	SenderThem   = "them"
	SenderSystem = "system"

	MessageText   = "text"
	MessageImage  = "image"
	MessageSystem = "system"

	ImagePreview = "📷 Image"
)

// Replies is the pool the simulated provider answers from.
var Replies = []string{
	"Got it! I'll be there on time.",
	"Sure, no problem!",
	"Thank you for reaching out.",
	"I'll get back to you shortly.",
	"Noted! See you then.",
}

type Attachment struct {
	Type string `json:"type"`
	Data string `json:"data"`
	Name string `json:"name"`
}

type Message struct {
	ID         string      `json:"id"`
	Sender     string      `json:"sender"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment"`
	Type       string      `json:"type"`
	Read       bool        `json:"read"`
	SentAt     time.Time   `json:"time"`
}

// Chat is a conversation between one customer and one provider. Unread counts
// the provider's messages the customer has not read yet.
type Chat struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	ProviderID    string    `json:"provider_id"`
	ProviderName  string    `json:"provider_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"timestamp"`
	Unread        int       `json:"unread"`
	Messages      []Message `json:"messages"`
}

func (c Chat) GetID() string {
	return c.ID
}

// Involves reports whether userID is either participant.
func (c Chat) Involves(userID string) bool {
	return c.CustomerID == userID || c.ProviderID == userID
}

// Append adds m and refreshes the list-view cache. System messages leave the
// cache alone.
func (c *Chat) Append(m Message) {
	c.Messages = append(c.Messages, m)

	if m.Sender == SenderThem && !m.Read {
		c.Unread++
	}

	if m.Sender == SenderSystem {
		return
	}

	c.LastMessage = m.Text
	if m.Type == MessageImage && m.Text == "" {
		c.LastMessage = ImagePreview
	}

	c.LastMessageAt = m.SentAt
}

// MarkRead flips every message to read and zeroes the unread counter.
func (c *Chat) MarkRead() {
	for i := range c.Messages {
		c.Messages[i].Read = true
	}

	c.Unread = 0
}

// CountUnread recounts unread messages from the provider.
func (c Chat) CountUnread() int {
	count := 0

	for _, m := range c.Messages {
		if m.Sender == SenderThem && !m.Read {
			count++
		}
	}

	return count
}

// Clone returns a copy sharing no slices with c.
func (c Chat) Clone() Chat {
	c.Messages = append([]Message(nil), c.Messages...)

	return c
}

// SeedChats is the demo customer's existing conversation.
func SeedChats() []Chat {
	at := time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC)

	chat := Chat{
		ID:           "c_seed_1",
		CustomerID:   "u1",
		ProviderID:   "p1",
		ProviderName: "Sparkle Clean Co.",
	}
	chat.Append(Message{ID: "m_seed_1", Sender: SenderMe, Text: "Hi, do you bring your own supplies?", Type: MessageText, Read: true, SentAt: at})
	chat.Append(Message{ID: "m_seed_2", Sender: SenderThem, Text: "Yes, everything is included.", Type: MessageText, SentAt: at.Add(5 * time.Minute)})

	return []Chat{chat}
}
