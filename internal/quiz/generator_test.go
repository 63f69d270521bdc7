package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator(1)

	quiz := g.Generate("algebra", 5, "medium", nil)
	assert.Equal(t, "algebra Quiz", quiz.Title)
	assert.Equal(t, "algebra", quiz.Topic)
	assert.Len(t, quiz.Questions, 5)
	assert.Equal(t, 10, quiz.TimeLimitMinutes)
	assert.NotZero(t, quiz.TotalPoints)

	stored, ok := g.Get(quiz.ID)
	require.True(t, ok)
	assert.Equal(t, quiz.ID, stored.ID)
}

func TestGenerateDefaults(t *testing.T) {
	g := NewGenerator(1)

	quiz := g.Generate("geometry", 0, "", nil)
	assert.Len(t, quiz.Questions, 10)
	for _, q := range quiz.Questions {
		assert.Equal(t, "medium", q.Difficulty)
	}
}

func TestGradeFullMarks(t *testing.T) {
	g := NewGenerator(1)
	quiz := g.Generate("algebra", 4, "medium", []string{"multiple_choice"})

	answers := make(map[string]string)
	for _, q := range quiz.Questions {
		answers[q.ID] = q.CorrectAnswer
	}

	result, err := g.Grade(quiz.ID, "alice", answers, 120)
	require.NoError(t, err)
	assert.Equal(t, quiz.TotalPoints, result.Score)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestGradeWrongAnswers(t *testing.T) {
	g := NewGenerator(1)
	quiz := g.Generate("algebra", 3, "medium", []string{"true_false"})

	answers := make(map[string]string)
	for _, q := range quiz.Questions {
		answers[q.ID] = "False"
	}

	result, err := g.Grade(quiz.ID, "alice", answers, 60)
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.Zero(t, result.CorrectAnswers)
}

func TestGradeShortAnswerPartialCredit(t *testing.T) {
	g := NewGenerator(1)
	quiz := g.Generate("algebra", 1, "medium", []string{"short_answer"})
	q := quiz.Questions[0]

	result, err := g.Grade(quiz.ID, "alice", map[string]string{q.ID: q.CorrectAnswer}, 30)
	require.NoError(t, err)
	assert.Equal(t, int(float64(q.Points)*0.8), result.Score)
}

func TestGradeUnknownQuiz(t *testing.T) {
	g := NewGenerator(1)
	_, err := g.Grade("missing", "alice", nil, 0)
	require.Error(t, err)
}

func TestFlashcards(t *testing.T) {
	g := NewGenerator(1)

	cards := g.Flashcards("algebra", 3)
	require.Len(t, cards, 3)
	for _, card := range cards {
		assert.Equal(t, "algebra", card.Topic)
		assert.Contains(t, []string{"easy", "medium", "hard"}, card.Difficulty)
	}
}

func TestListFiltersByTopic(t *testing.T) {
	g := NewGenerator(1)
	g.Generate("algebra", 1, "easy", nil)
	g.Generate("algebra", 1, "easy", nil)
	g.Generate("geometry", 1, "easy", nil)

	assert.Len(t, g.List(""), 3)
	assert.Len(t, g.List("algebra"), 2)
	assert.Empty(t, g.List("history"))
}
