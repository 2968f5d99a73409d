package trivia

import sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"

// Question is the client-facing shape of a question row.
type Question struct {
	ID         int64   `json:"id"`
	Question   string  `json:"question"`
	Answer     *string `json:"answer"`
	Category   int64   `json:"category"`
	Difficulty *int64  `json:"difficulty"`
}

// CategoryQuestion is a Question listed under its category, so the category field is dropped.
type CategoryQuestion struct {
	ID         int64   `json:"id"`
	Question   string  `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *int64  `json:"difficulty"`
}

// CategoryMap maps category id to display name. Keys encode as JSON object keys.
type CategoryMap map[int64]string

// QuestionPage is one page of the question listing.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories CategoryMap
}

// CategoryQuestions lists the questions of a single category.
type CategoryQuestions struct {
	Category  string
	Questions []CategoryQuestion
}

// QuizResult is either the next question or the end-of-game signal.
type QuizResult struct {
	Question *Question
	ForceEnd bool
}

func (q Question) withoutCategory() CategoryQuestion {
	return CategoryQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
	}
}

func toQuestion(row sqlcgen.Question) Question {
	q := Question{
		ID:       int64(row.ID),
		Question: row.Question,
		Category: int64(row.Category),
	}
	if row.Answer.Valid {
		answer := row.Answer.String
		q.Answer = &answer
	}
	if row.Difficulty.Valid {
		difficulty := int64(row.Difficulty.Int32)
		q.Difficulty = &difficulty
	}
	return q
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toCategoryMap(rows []sqlcgen.Category) CategoryMap {
	out := make(CategoryMap, len(rows))
	for _, row := range rows {
		out[int64(row.ID)] = row.Type
	}
	return out
}
