package pachca

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// User is a record from the /users listing
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname"`
}

// DisplayName resolves the name shown for the user in an export.
// First and last name win; then the nickname; then a synthetic user_<id> label.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	return syntheticName(u.ID)
}

func syntheticName(id int64) string {
	return fmt.Sprintf("user_%d", id)
}

// File describes a message attachment
type File struct {
	Name     string `json:"name"`
	FileType string `json:"file_type"`
	URL      string `json:"url"`
}

// ThreadRef points at the chat holding a message's replies
type ThreadRef struct {
	ChatID ChatID `json:"chat_id"`
}

// Message is a record from the /messages listing
type Message struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	CreatedAt string     `json:"created_at"`
	Content   string     `json:"content"`
	URL       string     `json:"url"`
	Files     []File     `json:"files"`
	Thread    *ThreadRef `json:"thread"`
}

// ThreadChatID returns the chat id of the message's thread, or "" when it has none
func (m Message) ThreadChatID() string {
	if m.Thread == nil {
		return ""
	}
	return string(m.Thread.ChatID)
}

// ChatID is a chat identifier. The API sends it as a number; strings are accepted too.
type ChatID string

// UnmarshalJSON accepts a JSON number, string or null
func (c *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChatID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("chat_id: %w", err)
	}
	*c = ChatID(n.String())
	return nil
}

type usersResponse struct {
	Data []User `json:"data"`
	Meta struct {
		Paginate struct {
			NextPage string `json:"next_page"`
		} `json:"paginate"`
	} `json:"meta"`
}

type messagesResponse struct {
	Data []Message `json:"data"`
}
