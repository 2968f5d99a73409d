package trivia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

type service interface {
	ListCategories(ctx context.Context) (CategoryMap, error)
	ListQuestions(ctx context.Context, page int) (QuestionPage, error)
	CreateQuestion(ctx context.Context, req CreateQuestionRequest) (Question, int64, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
	SearchQuestions(ctx context.Context, term *string) ([]Question, error)
	QuestionsByCategory(ctx context.Context, id int64) (CategoryQuestions, error)
	PlayQuiz(ctx context.Context, req *QuizRequest) (QuizResult, error)
}

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	service service
	logger  zerolog.Logger
}

func NewHTTPHandlers(svc service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: svc,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

// RegisterRoutes wires the trivia endpoints onto r.
func RegisterRoutes(r chi.Router, h *HTTPHandlers) {
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}", h.QuestionsByCategory)
	r.Get("/categories/{id}/questions", h.QuestionsByCategory)

	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Post("/questions/search", h.SearchQuestions)
	r.Delete("/questions/{id}", h.DeleteQuestion)

	r.Post("/quiz", h.PlayQuiz)
	r.Post("/quizzes", h.PlayQuiz)
}

type categoriesResponse struct {
	Success         bool        `json:"success"`
	TotalCategories int         `json:"total_categories"`
	Categories      CategoryMap `json:"categories"`
}

type questionPageResponse struct {
	Success        bool        `json:"success"`
	TotalQuestions int         `json:"total_questions"`
	Questions      []Question  `json:"questions"`
	Categories     CategoryMap `json:"categories"`
}

type createResponse struct {
	Success        bool     `json:"success"`
	TotalQuestions int64    `json:"total_questions"`
	Question       Question `json:"question"`
}

type deleteResponse struct {
	Success        bool  `json:"success"`
	TotalQuestions int64 `json:"total_questions"`
}

type searchResponse struct {
	Success      bool       `json:"success"`
	TotalMatches int        `json:"total_matches"`
	Questions    []Question `json:"questions"`
}

type categoryQuestionsResponse struct {
	Success        bool               `json:"success"`
	Category       string             `json:"category"`
	Questions      []CategoryQuestion `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question,omitempty"`
	ForceEnd bool      `json:"forceEnd,omitempty"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categoriesResponse{
		Success:         true,
		TotalCategories: len(categories),
		Categories:      categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))
	result, err := h.service.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, questionPageResponse{
		Success:        true,
		TotalQuestions: result.Total,
		Questions:      result.Questions,
		Categories:     result.Categories,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	created, total, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, createResponse{
		Success:        true,
		TotalQuestions: total,
		Question:       created,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	total, err := h.service.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, deleteResponse{Success: true, TotalQuestions: total})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	questions, err := h.service.SearchQuestions(r.Context(), req.Term())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, searchResponse{
		Success:      true,
		TotalMatches: len(questions),
		Questions:    questions,
	})
}

// QuestionsByCategory handles GET /categories/{id}
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	result, err := h.service.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:        true,
		Category:       result.Category,
		Questions:      result.Questions,
		TotalQuestions: len(result.Questions),
	})
}

// PlayQuiz handles POST /quiz. An empty body or a JSON null selects the unfiltered fallback.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.respondError(w, r, serverError("failed to read request body", err))
		return
	}

	var req *QuizRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		req = &QuizRequest{}
		if err := json.Unmarshal(trimmed, req); err != nil {
			h.respondError(w, r, invalidInput("invalid JSON payload"))
			return
		}
	}

	result, err := h.service.PlayQuiz(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, quizResponse{
		Success:  true,
		Question: result.Question,
		ForceEnd: result.ForceEnd,
	})
}

// decodeJSON decodes the request body into dst. A missing body decodes as an empty object
// so the request contract reports the missing fields.
func (h *HTTPHandlers) decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return invalidInput("invalid JSON payload")
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidInput("invalid id %q", raw)
	}
	return id, nil
}

// StatusCode maps the error taxonomy onto HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	log := logging.FromContextOr(r.Context(), h.logger)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}
	httperrors.RespondError(w, status, PublicMessage(err))
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
