package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Delete("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/questions/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodDelete, "/questions/{id}", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QuestionCreated()
	m.QuestionCreated()
	m.QuestionDeleted()
	m.QuizEnded()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.questionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.questionsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quizzesEnded))
}
