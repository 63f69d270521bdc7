package http

import (
	"net/http"
	"strconv"
)

func (h *handlers) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic         string   `json:"topic"`
		NumQuestions  int      `json:"num_questions"`
		Difficulty    string   `json:"difficulty"`
		QuestionTypes []string `json:"question_types"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	q := h.cfg.Quizzes.Generate(req.Topic, req.NumQuestions, req.Difficulty, req.QuestionTypes)
	respondJSON(w, http.StatusCreated, q)
}

func (h *handlers) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes := h.cfg.Quizzes.List(r.URL.Query().Get("topic"))
	respondJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes, "count": len(quizzes)})
}

func (h *handlers) getQuiz(w http.ResponseWriter, r *http.Request) {
	q, ok := h.cfg.Quizzes.Get(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "quiz not found")
		return
	}
	respondJSON(w, http.StatusOK, q)
}

func (h *handlers) gradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID           string            `json:"user_id"`
		Answers          map[string]string `json:"answers"`
		TimeTakenSeconds int               `json:"time_taken_seconds"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.cfg.Quizzes.Grade(r.PathValue("id"), req.UserID, req.Answers, req.TimeTakenSeconds)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *handlers) flashcards(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}
	num, _ := strconv.Atoi(r.URL.Query().Get("count"))

	cards := h.cfg.Quizzes.Flashcards(topic, num)
	respondJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards, "count": len(cards)})
}
