package repository

import (
	"context"
	"fmt"
	"strings"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	ExecTx(ctx context.Context, fn func(sqlcgen.Querier) error) error
}

// QuestionRepository wraps sqlc queries for question rows.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, categoryID)
}

// Search matches term as a literal, case-insensitive substring of the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestions(ctx, escapeLike(term))
}

// Create inserts a question and returns it with the new total, both read in one transaction.
func (r *QuestionRepository) Create(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, int64, error) {
	var (
		created sqlcgen.Question
		total   int64
	)
	err := r.store.ExecTx(ctx, func(q sqlcgen.Querier) error {
		var err error
		created, err = q.InsertQuestion(ctx, params)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		total, err = q.CountQuestions(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return sqlcgen.Question{}, 0, err
	}
	return created, total, nil
}

// Delete removes the question with the given id and returns the new total.
// ErrNotFound is returned (and the transaction rolled back) when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) (int64, error) {
	var total int64
	err := r.store.ExecTx(ctx, func(q sqlcgen.Querier) error {
		affected, err := q.DeleteQuestion(ctx, id)
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		total, err = q.CountQuestions(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
