package trivia

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/events"
)

type questionRepository interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
	ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error)
	Search(ctx context.Context, term string) ([]sqlcgen.Question, error)
	Create(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, int64, error)
	Delete(ctx context.Context, id int32) (int64, error)
}

type categoryRepository interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
	Get(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// EventPublisher announces committed question changes (implemented by events.Publisher).
type EventPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

// Observer receives domain counters (implemented by metrics.Metrics).
type Observer interface {
	QuestionCreated()
	QuestionDeleted()
	QuizEnded()
}

type ServiceOptions struct {
	PageSize  int
	Selector  *Selector
	Publisher EventPublisher
	Observer  Observer
}

// Service implements the trivia operations on top of the repositories.
type Service struct {
	questions  questionRepository
	categories categoryRepository
	pageSize   int
	selector   *Selector
	publisher  EventPublisher
	observer   Observer
	logger     zerolog.Logger
}

func NewService(questions questionRepository, categories categoryRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Selector == nil {
		opts.Selector = NewSelector(nil)
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Service{
		questions:  questions,
		categories: categories,
		pageSize:   opts.PageSize,
		selector:   opts.Selector,
		publisher:  opts.Publisher,
		observer:   opts.Observer,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// ListCategories returns every category keyed by id.
func (s *Service) ListCategories(ctx context.Context) (CategoryMap, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("no categories found")
		}
		return nil, serverError("failed to list categories", err)
	}
	return toCategoryMap(rows), nil
}

// ListQuestions returns one page of all questions plus the category names.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, serverError("failed to list questions", err)
	}
	all := toQuestions(rows)
	paged, err := Paginate(all, page, s.pageSize)
	if err != nil {
		return QuestionPage{}, err
	}

	categories := CategoryMap{}
	catRows, err := s.categories.List(ctx)
	switch {
	case err == nil:
		categories = toCategoryMap(catRows)
	case !errors.Is(err, repository.ErrNotFound):
		return QuestionPage{}, serverError("failed to list categories", err)
	}

	return QuestionPage{
		Questions:  paged,
		Total:      len(all),
		Categories: categories,
	}, nil
}

// CreateQuestion validates and stores a question, returning it with the new total.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (Question, int64, error) {
	if err := req.Validate(); err != nil {
		return Question{}, 0, err
	}
	category, ok := toInt32(int64(*req.Category))
	if !ok {
		return Question{}, 0, invalidInput("category is out of range")
	}

	params := sqlcgen.InsertQuestionParams{
		Question: req.Question,
		Category: category,
	}
	if req.Answer != nil {
		params.Answer = pgtype.Text{String: *req.Answer, Valid: true}
	}
	if req.Difficulty != nil {
		difficulty, ok := toInt32(*req.Difficulty)
		if !ok {
			return Question{}, 0, invalidInput("difficulty is out of range")
		}
		params.Difficulty = pgtype.Int4{Int32: difficulty, Valid: true}
	}

	row, total, err := s.questions.Create(ctx, params)
	if err != nil {
		return Question{}, 0, serverError("failed to create question", err)
	}
	created := toQuestion(row)

	s.observer.QuestionCreated()
	s.publish(ctx, events.NewEvent(events.TypeQuestionCreated, created.ID, total))
	return created, total, nil
}

// DeleteQuestion removes a question by id and returns the new total.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	dbID, ok := toInt32(id)
	if !ok {
		return 0, notFound("question %d not found", id)
	}
	total, err := s.questions.Delete(ctx, dbID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, notFound("question %d not found", id)
		}
		return 0, serverError("failed to delete question", err)
	}

	s.observer.QuestionDeleted()
	s.publish(ctx, events.NewEvent(events.TypeQuestionDeleted, id, total))
	return total, nil
}

// SearchQuestions returns the questions whose text contains term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, term *string) ([]Question, error) {
	if term == nil {
		return nil, invalidInput("searchTerm is required")
	}
	rows, err := s.questions.Search(ctx, *term)
	if err != nil {
		return nil, serverError("failed to search questions", err)
	}
	// ILIKE folds case per the database LC_CTYPE and only narrows the rows; a C-locale
	// database misses non-ASCII case variants. The matcher then applies Unicode lower-casing.
	return MatchQuestions(toQuestions(rows), term)
}

// QuestionsByCategory returns the category name and its questions without the category field.
func (s *Service) QuestionsByCategory(ctx context.Context, id int64) (CategoryQuestions, error) {
	dbID, ok := toInt32(id)
	if !ok {
		return CategoryQuestions{}, notFound("category %d not found", id)
	}
	category, err := s.categories.Get(ctx, dbID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CategoryQuestions{}, notFound("category %d not found", id)
		}
		return CategoryQuestions{}, serverError("failed to load category", err)
	}

	rows, err := s.questions.ListByCategory(ctx, dbID)
	if err != nil {
		return CategoryQuestions{}, serverError("failed to list questions", err)
	}
	questions := make([]CategoryQuestion, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, toQuestion(row).withoutCategory())
	}
	return CategoryQuestions{Category: category.Type, Questions: questions}, nil
}

// PlayQuiz picks the next quiz question. A nil request draws from every
// question with no exclusions; otherwise the pool is scoped to the requested
// category and previously shown ids are skipped. An empty pool ends the game.
func (s *Service) PlayQuiz(ctx context.Context, req *QuizRequest) (QuizResult, error) {
	if req == nil {
		rows, err := s.questions.List(ctx)
		if err != nil {
			return QuizResult{}, serverError("failed to load quiz questions", err)
		}
		return s.quizResult(s.selector.Pick(toQuestions(rows))), nil
	}

	pool, err := s.quizPool(ctx, req.rawCategory())
	if err != nil {
		return QuizResult{}, err
	}
	return s.quizResult(s.selector.Next(pool, req.previous())), nil
}

func (s *Service) quizPool(ctx context.Context, rawCategory []byte) ([]Question, error) {
	id, all, err := quizScope(rawCategory)
	if err != nil {
		return nil, serverError("failed to compute quiz candidates", err)
	}

	var rows []sqlcgen.Question
	if all {
		rows, err = s.questions.List(ctx)
	} else {
		dbID, ok := toInt32(id)
		if !ok {
			return nil, nil
		}
		rows, err = s.questions.ListByCategory(ctx, dbID)
	}
	if err != nil {
		return nil, serverError("failed to compute quiz candidates", err)
	}
	return toQuestions(rows), nil
}

func (s *Service) quizResult(q Question, ok bool) QuizResult {
	if !ok {
		s.observer.QuizEnded()
		return QuizResult{ForceEnd: true}
	}
	return QuizResult{Question: &q}
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("event", evt.Type).Int64("question_id", evt.QuestionID).Msg("publish question event failed")
	}
}

func toInt32(v int64) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}

type nopObserver struct{}

func (nopObserver) QuestionCreated() {}
func (nopObserver) QuestionDeleted() {}
func (nopObserver) QuizEnded()       {}
