package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateSubtopic inserts a new subtopic under a topic.
func (s *Store) CreateSubtopic(topic, subtopic, content string) (Subtopic, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO subtopics (topic, subtopic, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		topic, subtopic, content, toMillis(now), toMillis(now),
	)
	if err != nil {
		return Subtopic{}, fmt.Errorf("insert subtopic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Subtopic{}, fmt.Errorf("subtopic id: %w", err)
	}
	return Subtopic{
		ID:        id,
		Topic:     topic,
		Subtopic:  subtopic,
		Content:   content,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// GetSubtopic fetches a subtopic by ID; returns (zero, false, nil) when absent.
func (s *Store) GetSubtopic(id int64) (Subtopic, bool, error) {
	var sub Subtopic
	var created, updated int64
	err := s.db.QueryRow(
		`SELECT id, topic, subtopic, content, created_at, updated_at FROM subtopics WHERE id = ?`, id,
	).Scan(&sub.ID, &sub.Topic, &sub.Subtopic, &sub.Content, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Subtopic{}, false, nil
	}
	if err != nil {
		return Subtopic{}, false, fmt.Errorf("select subtopic: %w", err)
	}
	sub.CreatedAt = fromMillis(created)
	sub.UpdatedAt = fromMillis(updated)
	return sub, true, nil
}

// ListSubtopics returns all subtopics for a topic.
func (s *Store) ListSubtopics(topic string) ([]Subtopic, error) {
	rows, err := s.db.Query(
		`SELECT id, topic, subtopic, content, created_at, updated_at FROM subtopics WHERE topic = ? ORDER BY id`, topic,
	)
	if err != nil {
		return nil, fmt.Errorf("select subtopics: %w", err)
	}
	defer rows.Close()

	var out []Subtopic
	for rows.Next() {
		var sub Subtopic
		var created, updated int64
		if err := rows.Scan(&sub.ID, &sub.Topic, &sub.Subtopic, &sub.Content, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan subtopic: %w", err)
		}
		sub.CreatedAt = fromMillis(created)
		sub.UpdatedAt = fromMillis(updated)
		out = append(out, sub)
	}
	return out, rows.Err()
}
