package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type Role string

const (
	NormalUser Role = "user"
	Admin      Role = "admin"
)

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == Admin
}

type Resource struct {
	ID    string `json:"_id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Lesson struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	VideoURL    string     `json:"videoUrl"`
	Description string     `json:"description,omitempty"`
	Resources   []Resource `json:"resources"`
}

type Module struct {
	ID      string   `json:"_id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Course struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Modules     []Module `json:"modules"`
}

func (c Course) Module(id string) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

type Comment struct {
	ID        string    `json:"_id"`
	User      *User     `json:"user,omitempty"`
	Text      string    `json:"text"`
	CreatedAt Timestamp `json:"createdAt"`
}

type Post struct {
	ID        string    `json:"_id"`
	Author    *User     `json:"author,omitempty"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (p Post) AuthorID() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.ID
}

type Message struct {
	ID             string    `json:"_id,omitempty"`
	ConversationID string    `json:"conversationId,omitempty"`
	Sender         UserRef   `json:"sender"`
	Text           string    `json:"text"`
	CreatedAt      Timestamp `json:"createdAt"`
	ClientID       string    `json:"clientId,omitempty"`
}

type Conversation struct {
	ID          string    `json:"_id"`
	Members     []User    `json:"members"`
	Messages    []Message `json:"messages"`
	LastMessage string    `json:"lastMessage,omitempty"`
}

// Other devuelve el miembro que no es me.
func (c Conversation) Other(me string) User {
	for _, m := range c.Members {
		if m.ID != me {
			return m
		}
	}
	return User{}
}

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationOther   NotificationType = "other"
)

type Notification struct {
	ID        string           `json:"_id"`
	Recipient string           `json:"recipient,omitempty"`
	Type      NotificationType `json:"type"`
	Sender    *User            `json:"sender,omitempty"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"isRead"`
	Link      string           `json:"link,omitempty"`
	CreatedAt Timestamp        `json:"createdAt"`
}

// UserRef es un remitente que el backend manda a veces como id y a veces como usuario completo.
type UserRef struct {
	ID   string
	User *User
}

func RefTo(u User) UserRef {
	return UserRef{ID: u.ID, User: &u}
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = UserRef{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

// Timestamp acepta RFC3339 o milisegundos epoch (lo que emite el canal realtime).
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{time.Now().UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}
