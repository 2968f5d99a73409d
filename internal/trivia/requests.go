package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CategoryID decodes a category id given either as a JSON number or a numeric string.
type CategoryID int64

func (c *CategoryID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("category must be an integer id, got %s", data)
	}
	*c = CategoryID(id)
	return nil
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Question   string      `json:"question" validate:"required"`
	Answer     *string     `json:"answer"`
	Category   *CategoryID `json:"category" validate:"required,gt=0"`
	Difficulty *int64      `json:"difficulty"`
}

// Validate enforces the required fields and normalizes the question text.
func (r *CreateQuestionRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return invalidInput("%s", describeFieldError(fieldErrs[0]))
		}
		return invalidInput("invalid question payload")
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// SearchRequest is the body of POST /questions/search.
// search_term is accepted for older clients.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
	LegacyTerm *string `json:"search_term"`
}

// Term returns the supplied search term, or nil when none was given.
func (r SearchRequest) Term() *string {
	if r.SearchTerm != nil {
		return r.SearchTerm
	}
	return r.LegacyTerm
}

// QuizRequest is the body of POST /quiz. The category stays raw until the
// candidate pool is computed; previous_questions and quiz_category are aliases.
type QuizRequest struct {
	Category          json.RawMessage `json:"category"`
	QuizCategory      json.RawMessage `json:"quiz_category"`
	PreviousQuestions []int64         `json:"previousQuestions"`
	PreviousAlias     []int64         `json:"previous_questions"`
}

func (r *QuizRequest) rawCategory() json.RawMessage {
	if len(r.Category) > 0 {
		return r.Category
	}
	return r.QuizCategory
}

func (r *QuizRequest) previous() []int64 {
	if len(r.PreviousAlias) == 0 {
		return r.PreviousQuestions
	}
	return append(append([]int64(nil), r.PreviousQuestions...), r.PreviousAlias...)
}

// quizScope resolves a raw category into either "all questions" or one category id.
// Accepted forms: absent, null, "all", a number, a numeric string, or {"id": N}; id 0 means all.
func quizScope(raw json.RawMessage) (id int64, all bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, true, nil
	}

	if raw[0] == '{' {
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, false, fmt.Errorf("decode quiz category: %w", err)
		}
		return quizScope(obj.ID)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.EqualFold(strings.TrimSpace(s), "all") {
		return 0, true, nil
	}

	var cid CategoryID
	if err := cid.UnmarshalJSON(raw); err != nil {
		return 0, false, err
	}
	if cid == 0 {
		return 0, true, nil
	}
	return int64(cid), false, nil
}
