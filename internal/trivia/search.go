package trivia

import "strings"

// MatchQuestions keeps the questions whose text contains term, ignoring case,
// in their original order. An empty term matches everything; a nil term is invalid.
func MatchQuestions(questions []Question, term *string) ([]Question, error) {
	if term == nil {
		return nil, invalidInput("searchTerm is required")
	}
	needle := strings.ToLower(*term)
	matched := make([]Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matched = append(matched, q)
		}
	}
	return matched, nil
}
