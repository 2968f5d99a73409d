package trivia

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/events"
)

func newTestService(questions *memoryQuestions, categories *memoryCategories, opts ServiceOptions) *Service {
	return NewService(questions, categories, opts, zerolog.Nop())
}

func TestServiceListCategories(t *testing.T) {
	svc := newTestService(seedQuestions(0), seedCategories(), ServiceOptions{})

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.Equal(t, "Science", categories[1])

	empty := newTestService(seedQuestions(0), &memoryCategories{}, ServiceOptions{})
	_, err = empty.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	broken := newTestService(seedQuestions(0), &memoryCategories{err: errors.New("db down")}, ServiceOptions{})
	_, err = broken.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrServer)
}

func TestServiceListQuestionsPaging(t *testing.T) {
	svc := newTestService(seedQuestions(19), seedCategories(), ServiceOptions{})
	ctx := context.Background()

	first, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, 19, first.Total)
	assert.Len(t, first.Categories, 6)
	assert.Equal(t, int64(1), first.Questions[0].ID)

	second, err := svc.ListQuestions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Questions, 9)
	assert.Equal(t, int64(11), second.Questions[0].ID)

	_, err = svc.ListQuestions(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceListQuestionsWithoutCategories(t *testing.T) {
	svc := newTestService(seedQuestions(3), &memoryCategories{}, ServiceOptions{})

	page, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Categories)
	assert.NotNil(t, page.Categories)
}

func TestServiceCreateQuestion(t *testing.T) {
	questions := seedQuestions(4)
	publisher := &recordingPublisher{}
	observer := &countingObserver{}
	svc := newTestService(questions, seedCategories(), ServiceOptions{Publisher: publisher, Observer: observer})

	cat := CategoryID(3)
	difficulty := int64(2)
	answer := "Paris"
	created, total, err := svc.CreateQuestion(context.Background(), CreateQuestionRequest{
		Question:   " What is the capital of France? ",
		Answer:     &answer,
		Category:   &cat,
		Difficulty: &difficulty,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "What is the capital of France?", created.Question)
	assert.Equal(t, int64(3), created.Category)
	require.NotNil(t, created.Answer)
	assert.Equal(t, "Paris", *created.Answer)
	require.NotNil(t, created.Difficulty)
	assert.Equal(t, int64(2), *created.Difficulty)

	assert.Equal(t, 1, observer.created)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeQuestionCreated, publisher.events[0].Type)
	assert.Equal(t, int64(5), publisher.events[0].QuestionID)
	assert.Equal(t, int64(5), publisher.events[0].TotalQuestions)
}

func TestServiceCreateQuestionOptionalFieldsStayNull(t *testing.T) {
	svc := newTestService(seedQuestions(0), seedCategories(), ServiceOptions{})

	cat := CategoryID(1)
	created, total, err := svc.CreateQuestion(context.Background(), CreateQuestionRequest{Question: "Q?", Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Nil(t, created.Answer)
	assert.Nil(t, created.Difficulty)
}

func TestServiceCreateQuestionRejectsInvalid(t *testing.T) {
	questions := seedQuestions(2)
	svc := newTestService(questions, seedCategories(), ServiceOptions{})
	ctx := context.Background()

	_, _, err := svc.CreateQuestion(ctx, CreateQuestionRequest{Question: "Q?"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	huge := CategoryID(math.MaxInt32 + 1)
	_, _, err = svc.CreateQuestion(ctx, CreateQuestionRequest{Question: "Q?", Category: &huge})
	assert.ErrorIs(t, err, ErrInvalidInput)

	rows, _ := questions.List(ctx)
	assert.Len(t, rows, 2)
}

func TestServicePublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("redis unavailable")}
	svc := newTestService(seedQuestions(1), seedCategories(), ServiceOptions{Publisher: publisher})

	total, err := svc.DeleteQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Len(t, publisher.events, 1)
}

func TestServiceDeleteQuestion(t *testing.T) {
	observer := &countingObserver{}
	svc := newTestService(seedQuestions(3), seedCategories(), ServiceOptions{Observer: observer})
	ctx := context.Background()

	total, err := svc.DeleteQuestion(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, observer.deleted)

	_, err = svc.DeleteQuestion(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteQuestion(ctx, math.MaxInt64)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, observer.deleted)
}

func TestServiceSearchQuestions(t *testing.T) {
	questions := newMemoryQuestions(
		questionRow(1, "What is the title of this book?", 4),
		questionRow(2, "Which planet is red?", 1),
		questionRow(3, "Name the TITLE holder", 6),
	)
	svc := newTestService(questions, seedCategories(), ServiceOptions{})
	ctx := context.Background()

	matched, err := svc.SearchQuestions(ctx, strPtr("title"))
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, int64(3), matched[1].ID)

	all, err := svc.SearchQuestions(ctx, strPtr(""))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.SearchQuestions(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceQuestionsByCategory(t *testing.T) {
	svc := newTestService(seedQuestions(12), seedCategories(), ServiceOptions{})
	ctx := context.Background()

	result, err := svc.QuestionsByCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Art", result.Category)
	require.Len(t, result.Questions, 2)
	assert.Equal(t, int64(2), result.Questions[0].ID)
	assert.Equal(t, int64(8), result.Questions[1].ID)

	_, err = svc.QuestionsByCategory(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServicePlayQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped to category excluding previous", func(t *testing.T) {
		svc := newTestService(seedQuestions(12), seedCategories(), ServiceOptions{
			Selector: NewSelector(func(n int) int { return 0 }),
		})
		result, err := svc.PlayQuiz(ctx, &QuizRequest{
			Category:          []byte(`{"id":1,"type":"Science"}`),
			PreviousQuestions: []int64{1},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Question)
		assert.Equal(t, int64(7), result.Question.ID)
		assert.False(t, result.ForceEnd)
	})

	t.Run("all categories", func(t *testing.T) {
		svc := newTestService(seedQuestions(3), seedCategories(), ServiceOptions{})
		for range 20 {
			result, err := svc.PlayQuiz(ctx, &QuizRequest{Category: []byte(`"all"`), PreviousQuestions: []int64{1, 3}})
			require.NoError(t, err)
			require.NotNil(t, result.Question)
			assert.Equal(t, int64(2), result.Question.ID)
		}
	})

	t.Run("exhausted pool ends the game", func(t *testing.T) {
		observer := &countingObserver{}
		svc := newTestService(seedQuestions(12), seedCategories(), ServiceOptions{Observer: observer})
		result, err := svc.PlayQuiz(ctx, &QuizRequest{Category: []byte(`1`), PreviousQuestions: []int64{1, 7}})
		require.NoError(t, err)
		assert.True(t, result.ForceEnd)
		assert.Nil(t, result.Question)
		assert.Equal(t, 1, observer.ended)
	})

	t.Run("nil request draws from every question", func(t *testing.T) {
		svc := newTestService(seedQuestions(2), seedCategories(), ServiceOptions{})
		result, err := svc.PlayQuiz(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, result.Question)
		assert.Contains(t, []int64{1, 2}, result.Question.ID)
	})

	t.Run("nil request on empty store ends the game", func(t *testing.T) {
		svc := newTestService(seedQuestions(0), seedCategories(), ServiceOptions{})
		result, err := svc.PlayQuiz(ctx, nil)
		require.NoError(t, err)
		assert.True(t, result.ForceEnd)
	})

	t.Run("malformed category is a server error", func(t *testing.T) {
		svc := newTestService(seedQuestions(2), seedCategories(), ServiceOptions{})
		_, err := svc.PlayQuiz(ctx, &QuizRequest{Category: []byte(`"science"`)})
		assert.ErrorIs(t, err, ErrServer)
	})

	t.Run("repository failure is a server error", func(t *testing.T) {
		questions := seedQuestions(2)
		questions.err = errors.New("db down")
		svc := newTestService(questions, seedCategories(), ServiceOptions{})
		_, err := svc.PlayQuiz(ctx, &QuizRequest{})
		assert.ErrorIs(t, err, ErrServer)
	})
}

func TestServiceSearchQuestionsNonASCII(t *testing.T) {
	questions := newMemoryQuestions(
		questionRow(1, "Où se trouve l'école polytechnique?", 3),
		questionRow(2, "Which river flows through Paris?", 3),
	)
	svc := newTestService(questions, seedCategories(), ServiceOptions{})

	matched, err := svc.SearchQuestions(context.Background(), strPtr("ÉCOLE"))
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].ID)
}
