package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type mockStore struct {
	mock.Mock
}

var _ sqlcgen.Store = (*mockStore)(nil)

func (m *mockStore) CountQuestions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Category), args.Error(1)
}

func (m *mockStore) InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlcgen.Question), args.Error(1)
}

func (m *mockStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sqlcgen.Category), args.Error(1)
}

func (m *mockStore) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sqlcgen.Question), args.Error(1)
}

func (m *mockStore) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]sqlcgen.Question), args.Error(1)
}

func (m *mockStore) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]sqlcgen.Question), args.Error(1)
}

// ExecTx runs fn against the mock itself; tests assert on the returned error.
func (m *mockStore) ExecTx(ctx context.Context, fn func(sqlcgen.Querier) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}
