package sqlite

import "fmt"

// Stats returns the message breakdown for one conversation.
func (s *Store) Stats(conversationID int64) (ConversationStats, error) {
	rows, err := s.db.Query(
		`SELECT role, COUNT(*) FROM messages WHERE conversation_id = ? GROUP BY role`, conversationID,
	)
	if err != nil {
		return ConversationStats{}, fmt.Errorf("select message counts: %w", err)
	}
	defer rows.Close()

	stats := ConversationStats{ConversationID: conversationID}
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return ConversationStats{}, fmt.Errorf("scan message count: %w", err)
		}
		stats.TotalMessages += count
		switch role {
		case "user":
			stats.UserMessages = count
		case "assistant":
			stats.AssistantMessages = count
		case "system":
			stats.SystemMessages = count
		}
	}
	return stats, rows.Err()
}

// PlatformSummary aggregates platform-wide analytics.
func (s *Store) PlatformSummary() (Summary, error) {
	var summary Summary

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM conversations`, &summary.TotalConversations},
		{`SELECT COUNT(*) FROM conversations WHERE status = 'active'`, &summary.ActiveConversations},
		{`SELECT COUNT(*) FROM messages`, &summary.TotalMessages},
		{`SELECT COUNT(*) FROM subtopics`, &summary.TotalSubtopics},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return Summary{}, fmt.Errorf("summary count: %w", err)
		}
	}

	rows, err := s.db.Query(
		`SELECT topic, COUNT(*) AS count FROM subtopics GROUP BY topic ORDER BY count DESC, topic ASC LIMIT 5`,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("select top topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return Summary{}, fmt.Errorf("scan top topic: %w", err)
		}
		summary.TopTopics = append(summary.TopTopics, tc)
	}
	return summary, rows.Err()
}
