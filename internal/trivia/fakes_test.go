package trivia

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/events"
)

// memoryQuestions is an in-memory questionRepository.
type memoryQuestions struct {
	mu     sync.Mutex
	rows   []sqlcgen.Question
	nextID int32
	err    error
}

func newMemoryQuestions(rows ...sqlcgen.Question) *memoryQuestions {
	m := &memoryQuestions{nextID: 1}
	for _, row := range rows {
		m.rows = append(m.rows, row)
		if row.ID >= m.nextID {
			m.nextID = row.ID + 1
		}
	}
	return m
}

func (m *memoryQuestions) List(context.Context) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.rows), nil
}

func (m *memoryQuestions) ListByCategory(_ context.Context, categoryID int32) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []sqlcgen.Question
	for _, row := range m.rows {
		if row.Category == categoryID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryQuestions) Search(_ context.Context, term string) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []sqlcgen.Question
	for _, row := range m.rows {
		if strings.Contains(strings.ToLower(row.Question), strings.ToLower(term)) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryQuestions) Create(_ context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return sqlcgen.Question{}, 0, m.err
	}
	row := sqlcgen.Question{
		ID:         m.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}
	m.nextID++
	m.rows = append(m.rows, row)
	return row, int64(len(m.rows)), nil
}

func (m *memoryQuestions) Delete(_ context.Context, id int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	idx := slices.IndexFunc(m.rows, func(row sqlcgen.Question) bool { return row.ID == id })
	if idx < 0 {
		return 0, repository.ErrNotFound
	}
	m.rows = slices.Delete(m.rows, idx, idx+1)
	return int64(len(m.rows)), nil
}

// memoryCategories is an in-memory categoryRepository.
type memoryCategories struct {
	rows []sqlcgen.Category
	err  error
}

func (m *memoryCategories) List(context.Context) ([]sqlcgen.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return m.rows, nil
}

func (m *memoryCategories) Get(_ context.Context, id int32) (sqlcgen.Category, error) {
	if m.err != nil {
		return sqlcgen.Category{}, m.err
	}
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return sqlcgen.Category{}, repository.ErrNotFound
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type countingObserver struct {
	created, deleted, ended int
}

func (o *countingObserver) QuestionCreated() { o.created++ }
func (o *countingObserver) QuestionDeleted() { o.deleted++ }
func (o *countingObserver) QuizEnded()       { o.ended++ }

func seedCategories() *memoryCategories {
	return &memoryCategories{rows: []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}}
}

func questionRow(id int32, text string, category int32) sqlcgen.Question {
	return sqlcgen.Question{
		ID:         id,
		Question:   text,
		Answer:     pgtype.Text{String: "answer " + text, Valid: true},
		Category:   category,
		Difficulty: pgtype.Int4{Int32: 1, Valid: true},
	}
}

// seedQuestions returns n questions spread round-robin over categories 1..6.
func seedQuestions(n int) *memoryQuestions {
	rows := make([]sqlcgen.Question, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, questionRow(int32(i), "Question number "+strconv.Itoa(i), int32((i-1)%6+1)))
	}
	return newMemoryQuestions(rows...)
}
