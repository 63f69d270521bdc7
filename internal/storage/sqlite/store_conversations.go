package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateConversation opens a new conversation record for a room and identity.
func (s *Store) CreateConversation(roomName, userIdentity string, metadata map[string]interface{}) (Conversation, error) {
	meta, err := encodeMetadata(metadata)
	if err != nil {
		return Conversation{}, err
	}

	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO conversations (room_name, user_identity, started_at, status, metadata) VALUES (?, ?, ?, 'active', ?)`,
		roomName, userIdentity, toMillis(now), meta,
	)
	if err != nil {
		return Conversation{}, fmt.Errorf("insert conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Conversation{}, fmt.Errorf("conversation id: %w", err)
	}
	return Conversation{
		ID:           id,
		RoomName:     roomName,
		UserIdentity: userIdentity,
		StartedAt:    now.UTC(),
		Status:       "active",
		Metadata:     metadata,
	}, nil
}

// GetConversation fetches one conversation; returns (zero, false, nil) when absent.
func (s *Store) GetConversation(id int64) (Conversation, bool, error) {
	var conv Conversation
	var started int64
	var ended sql.NullInt64
	var meta sql.NullString

	err := s.db.QueryRow(
		`SELECT id, room_name, user_identity, started_at, ended_at, status, metadata FROM conversations WHERE id = ?`, id,
	).Scan(&conv.ID, &conv.RoomName, &conv.UserIdentity, &started, &ended, &conv.Status, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return Conversation{}, false, nil
	}
	if err != nil {
		return Conversation{}, false, fmt.Errorf("select conversation: %w", err)
	}

	conv.StartedAt = fromMillis(started)
	if ended.Valid {
		t := fromMillis(ended.Int64)
		conv.EndedAt = &t
	}
	conv.Metadata, err = decodeMetadata(meta)
	if err != nil {
		return Conversation{}, false, err
	}
	return conv, true, nil
}

// EndConversation marks a conversation ended.
func (s *Store) EndConversation(id int64) error {
	_, err := s.db.Exec(
		`UPDATE conversations SET ended_at = ?, status = 'ended' WHERE id = ?`,
		toMillis(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("end conversation: %w", err)
	}
	return nil
}

// AddMessage appends a message to a conversation.
func (s *Store) AddMessage(conversationID int64, role, content string, metadata map[string]interface{}) (Message, error) {
	switch role {
	case "user", "assistant", "system":
	default:
		return Message{}, fmt.Errorf("invalid role %q", role)
	}

	meta, err := encodeMetadata(metadata)
	if err != nil {
		return Message{}, err
	}

	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO messages (conversation_id, role, content, timestamp, metadata) VALUES (?, ?, ?, ?, ?)`,
		conversationID, role, content, toMillis(now), meta,
	)
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, fmt.Errorf("message id: %w", err)
	}
	return Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Timestamp:      now.UTC(),
		Metadata:       metadata,
	}, nil
}

// ConversationMessages returns up to limit messages in chronological order.
func (s *Store) ConversationMessages(conversationID int64, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(
		`SELECT id, conversation_id, role, content, timestamp, metadata
		 FROM messages WHERE conversation_id = ? ORDER BY timestamp ASC, id ASC LIMIT ?`,
		conversationID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var msg Message
		var ts int64
		var meta sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &ts, &meta); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Timestamp = fromMillis(ts)
		msg.Metadata, err = decodeMetadata(meta)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// UpsertUserProfile creates or replaces a user profile.
func (s *Store) UpsertUserProfile(userIdentity, displayName string, preferences map[string]interface{}) (UserProfile, error) {
	prefs, err := encodeMetadata(preferences)
	if err != nil {
		return UserProfile{}, err
	}

	now := toMillis(s.now())
	_, err = s.db.Exec(
		`INSERT INTO user_profiles (user_identity, display_name, preferences, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_identity) DO UPDATE SET
			display_name = excluded.display_name,
			preferences = excluded.preferences,
			updated_at = excluded.updated_at`,
		userIdentity, displayName, prefs, now, now,
	)
	if err != nil {
		return UserProfile{}, fmt.Errorf("upsert profile: %w", err)
	}

	profile, ok, err := s.UserProfile(userIdentity)
	if err != nil {
		return UserProfile{}, err
	}
	if !ok {
		return UserProfile{}, fmt.Errorf("profile %s not found after upsert", userIdentity)
	}
	return profile, nil
}

// UserProfile fetches a profile; returns (zero, false, nil) when absent.
func (s *Store) UserProfile(userIdentity string) (UserProfile, bool, error) {
	var profile UserProfile
	var displayName, prefs sql.NullString
	var created, updated int64

	err := s.db.QueryRow(
		`SELECT id, user_identity, display_name, preferences, created_at, updated_at FROM user_profiles WHERE user_identity = ?`,
		userIdentity,
	).Scan(&profile.ID, &profile.UserIdentity, &displayName, &prefs, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return UserProfile{}, false, nil
	}
	if err != nil {
		return UserProfile{}, false, fmt.Errorf("select profile: %w", err)
	}

	profile.DisplayName = displayName.String
	profile.Preferences, err = decodeMetadata(prefs)
	if err != nil {
		return UserProfile{}, false, err
	}
	profile.CreatedAt = fromMillis(created)
	profile.UpdatedAt = fromMillis(updated)
	return profile, true, nil
}
