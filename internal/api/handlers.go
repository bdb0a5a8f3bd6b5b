package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/studyy/internal/catalog"
)

// Error codes returned in {"error": code} bodies.
const (
	codeTopicNotFound   = "topic_not_found"
	codeProblemNotFound = "problem_not_found"
	codeInvalidFilter   = "invalid_filter"
)

type problemPage struct {
	Problems   []catalog.Problem `json:"problems"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalPages int               `json:"totalPages"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code string) {
	respondJSON(w, status, map[string]string{"error": code})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"topics": s.catalog.Summaries(),
	})
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := s.catalog.Topic(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, codeTopicNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"topic": topic})
}

func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	problem, topicID, err := s.catalog.Problem(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, codeProblemNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"topicId": topicID,
		"problem": problem,
	})
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	f, page, perPage, err := parseProblemQuery(r)
	if err != nil {
		s.logger.Debug("rejected problem filter", "query", r.URL.RawQuery, "err", err)
		respondError(w, http.StatusBadRequest, codeInvalidFilter)
		return
	}

	p := catalog.Paginate(s.catalog.List(f), page, perPage)
	respondJSON(w, http.StatusOK, problemPage{
		Problems:   p.Items,
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
	})
}

// parseProblemQuery reads the filter and paging parameters. Empty values
// impose no constraint.
func parseProblemQuery(r *http.Request) (catalog.Filter, int, int, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Topic: q.Get("topic"),
		Query: q.Get("q"),
	}

	var err error
	if v := q.Get("subject"); v != "" {
		if f.Subject, err = catalog.ParseSubject(v); err != nil {
			return f, 0, 0, err
		}
	}
	if v := q.Get("difficulty"); v != "" {
		if f.Difficulty, err = catalog.ParseDifficulty(v); err != nil {
			return f, 0, 0, err
		}
	}
	if v := q.Get("educationLevel"); v != "" {
		if f.EducationLevel, err = catalog.ParseEducationLevel(v); err != nil {
			return f, 0, 0, err
		}
	}
	if v := q.Get("questionType"); v != "" {
		if f.QuestionType, err = catalog.ParseQuestionType(v); err != nil {
			return f, 0, 0, err
		}
	}

	page, perPage := 1, catalog.DefaultPerPage
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			return f, 0, 0, err
		}
	}
	if v := q.Get("perPage"); v != "" {
		if perPage, err = strconv.Atoi(v); err != nil {
			return f, 0, 0, err
		}
	}
	return f, page, perPage, nil
}
