package sqlite

import "time"

type Subtopic struct {
	ID        int64     `json:"id"`
	Topic     string    `json:"topic"`
	Subtopic  string    `json:"subtopic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Conversation struct {
	ID           int64                  `json:"id"`
	RoomName     string                 `json:"room_name"`
	UserIdentity string                 `json:"user_identity"`
	StartedAt    time.Time              `json:"started_at"`
	EndedAt      *time.Time             `json:"ended_at,omitempty"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type Message struct {
	ID             int64                  `json:"id"`
	ConversationID int64                  `json:"conversation_id"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Timestamp      time.Time              `json:"timestamp"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type UserProfile struct {
	ID           int64                  `json:"id"`
	UserIdentity string                 `json:"user_identity"`
	DisplayName  string                 `json:"display_name,omitempty"`
	Preferences  map[string]interface{} `json:"preferences,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ConversationStats summarizes message volume for one conversation.
type ConversationStats struct {
	ConversationID    int64 `json:"conversation_id"`
	TotalMessages     int   `json:"total_messages"`
	UserMessages      int   `json:"user_messages"`
	AssistantMessages int   `json:"assistant_messages"`
	SystemMessages    int   `json:"system_messages"`
}

// TopicCount is one row of the top-topics breakdown.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Summary aggregates platform-wide numbers.
type Summary struct {
	TotalConversations  int          `json:"total_conversations"`
	ActiveConversations int          `json:"active_conversations"`
	TotalMessages       int          `json:"total_messages"`
	TotalSubtopics      int          `json:"total_subtopics"`
	TopTopics           []TopicCount `json:"top_topics"`
}
