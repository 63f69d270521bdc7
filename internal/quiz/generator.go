package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Question is one quiz item.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"question_type"` // multiple_choice, true_false, short_answer, fill_blank
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Points        int      `json:"points"`
}

type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Topic            string     `json:"topic"`
	Questions        []Question `json:"questions"`
	TotalPoints      int        `json:"total_points"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
}

type Result struct {
	QuizID           string            `json:"quiz_id"`
	UserID           string            `json:"user_id"`
	Score            int               `json:"score"`
	MaxScore         int               `json:"max_score"`
	Percentage       float64           `json:"percentage"`
	CorrectAnswers   int               `json:"correct_answers"`
	TotalQuestions   int               `json:"total_questions"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
	Answers          map[string]string `json:"answers"`
}

// Flashcard is one spaced-repetition card.
type Flashcard struct {
	ID         string `json:"id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

var difficulties = []string{"easy", "medium", "hard"}

func pointsFor(difficulty string) int {
	switch difficulty {
	case "easy":
		return 5
	case "hard":
		return 15
	default:
		return 10
	}
}

// Generator builds template-driven quizzes and keeps them for grading.
type Generator struct {
	mu      sync.RWMutex
	quizzes map[string]Quiz
	rng     *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		quizzes: make(map[string]Quiz),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Generate builds a quiz for a topic. When questionTypes is empty a default
// mix of multiple choice, true/false and short answer is used.
func (g *Generator) Generate(topic string, numQuestions int, difficulty string, questionTypes []string) Quiz {
	if numQuestions <= 0 {
		numQuestions = 10
	}
	if difficulty == "" {
		difficulty = "medium"
	}
	if len(questionTypes) == 0 {
		questionTypes = []string{"multiple_choice", "true_false", "short_answer"}
	}

	quizID := "quiz_" + uuid.NewString()[:8]

	g.mu.Lock()
	defer g.mu.Unlock()

	questions := make([]Question, 0, numQuestions)
	total := 0
	for i := 0; i < numQuestions; i++ {
		qType := questionTypes[g.rng.Intn(len(questionTypes))]
		q := buildQuestion(topic, qType, difficulty, fmt.Sprintf("%s_q%d", quizID, i+1))
		total += q.Points
		questions = append(questions, q)
	}

	quiz := Quiz{
		ID:               quizID,
		Title:            topic + " Quiz",
		Description:      "Test your knowledge of " + topic,
		Topic:            topic,
		Questions:        questions,
		TotalPoints:      total,
		TimeLimitMinutes: numQuestions * 2,
	}
	g.quizzes[quizID] = quiz
	return quiz
}

func buildQuestion(topic, qType, difficulty, id string) Question {
	switch qType {
	case "true_false":
		return Question{
			ID:            id,
			Question:      topic + " is essential for understanding the broader concept.",
			Type:          "true_false",
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
			Explanation:   "This statement about " + topic + " is true because...",
			Difficulty:    difficulty,
			Points:        5,
		}
	case "short_answer":
		return Question{
			ID:            id,
			Question:      "Explain the main concept of " + topic + " in your own words.",
			Type:          "short_answer",
			CorrectAnswer: "A comprehensive explanation of " + topic,
			Explanation:   "A good answer should cover the key aspects...",
			Difficulty:    difficulty,
			Points:        15,
		}
	case "fill_blank":
		return Question{
			ID:            id,
			Question:      "The key principle of " + topic + " is ___________.",
			Type:          "fill_blank",
			CorrectAnswer: "the fundamental concept",
			Explanation:   "The blank should be filled with...",
			Difficulty:    difficulty,
			Points:        10,
		}
	default: // multiple_choice
		options := []string{
			"Option A about " + topic,
			"Option B about " + topic,
			"Option C about " + topic,
			"Option D about " + topic,
		}
		return Question{
			ID:            id,
			Question:      "Which statement best describes " + topic + "?",
			Type:          "multiple_choice",
			Options:       options,
			CorrectAnswer: options[0],
			Explanation:   "The correct answer explains " + topic + " comprehensively.",
			Difficulty:    difficulty,
			Points:        pointsFor(difficulty),
		}
	}
}

// Grade scores a completed quiz. Short answers earn partial credit when the
// answer overlaps the expected text.
func (g *Generator) Grade(quizID, userID string, answers map[string]string, timeTakenSeconds int) (Result, error) {
	g.mu.RLock()
	quiz, ok := g.quizzes[quizID]
	g.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("quiz %s not found", quizID)
	}

	var score float64
	var correct float64
	for _, q := range quiz.Questions {
		answer := strings.ToLower(strings.TrimSpace(answers[q.ID]))
		expected := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		if answer == "" {
			continue
		}

		switch q.Type {
		case "short_answer":
			if strings.Contains(answer, expected) || strings.Contains(expected, answer) {
				score += float64(q.Points) * 0.8
				correct += 0.8
			}
		case "fill_blank":
			if answer == expected || strings.Contains(expected, answer) {
				score += float64(q.Points)
				correct++
			}
		default:
			if answer == expected {
				score += float64(q.Points)
				correct++
			}
		}
	}

	percentage := 0.0
	if quiz.TotalPoints > 0 {
		percentage = score / float64(quiz.TotalPoints) * 100
	}

	return Result{
		QuizID:           quizID,
		UserID:           userID,
		Score:            int(score),
		MaxScore:         quiz.TotalPoints,
		Percentage:       float64(int(percentage*100)) / 100,
		CorrectAnswers:   int(correct),
		TotalQuestions:   len(quiz.Questions),
		TimeTakenSeconds: timeTakenSeconds,
		Answers:          answers,
	}, nil
}

// Flashcards builds spaced-repetition cards for a topic.
func (g *Generator) Flashcards(topic string, numCards int) []Flashcard {
	if numCards <= 0 {
		numCards = 10
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cards := make([]Flashcard, 0, numCards)
	for i := 0; i < numCards; i++ {
		cards = append(cards, Flashcard{
			ID:         fmt.Sprintf("card_%d", i+1),
			Front:      fmt.Sprintf("Key concept %d of %s", i+1, topic),
			Back:       fmt.Sprintf("Explanation of concept %d", i+1),
			Topic:      topic,
			Difficulty: difficulties[g.rng.Intn(len(difficulties))],
		})
	}
	return cards
}

// Get returns a stored quiz.
func (g *Generator) Get(quizID string) (Quiz, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	quiz, ok := g.quizzes[quizID]
	return quiz, ok
}

// List returns stored quizzes, optionally filtered by topic.
func (g *Generator) List(topic string) []Quiz {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Quiz, 0, len(g.quizzes))
	for _, quiz := range g.quizzes {
		if topic != "" && quiz.Topic != topic {
			continue
		}
		out = append(out, quiz)
	}
	return out
}
