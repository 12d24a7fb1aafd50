// Package web serves the JSON API over the question store.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/store"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	store  *store.Store
	router *http.ServeMux
}

// NewServer creates and configures a new server.
func NewServer(st *store.Store) *Server {
	s := &Server{
		store:  st,
		router: http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.HandleFunc("/api/questions", s.handleQuestions())
	s.router.HandleFunc("/api/questions/due", s.handleDue())
	s.router.HandleFunc("/api/questions/", s.handleQuestionByID())
	s.router.HandleFunc("/api/stats", s.handleStats())
}

// handleQuestions handles listing and creation.
func (s *Server) handleQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			filter := store.ListFilter{
				Category: r.URL.Query().Get("category"),
				Status:   domain.Status(r.URL.Query().Get("status")),
			}
			filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
			filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
			s.respond(w, http.StatusOK, s.store.List(filter))
		case http.MethodPost:
			var input domain.CreateQuestion
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			q, err := s.store.Create(input)
			if err != nil {
				s.fail(w, err)
				return
			}
			s.respond(w, http.StatusCreated, q)
		default:
			s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// handleQuestionByID handles /api/questions/{id} and the review-cycle
// actions nested under it.
func (s *Server) handleQuestionByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/questions/")
		idPart, action, _ := strings.Cut(rest, "/")
		id, err := strconv.Atoi(idPart)
		if err != nil || id < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid question id")
			return
		}

		if action != "" {
			s.handleAction(w, r, id, action)
			return
		}

		switch r.Method {
		case http.MethodGet:
			q, err := s.store.GetByID(id)
			if err != nil {
				s.fail(w, err)
				return
			}
			s.respond(w, http.StatusOK, q)
		case http.MethodPut:
			var input domain.UpdateQuestion
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				s.respondError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			q, err := s.store.Update(id, input)
			if err != nil {
				s.fail(w, err)
				return
			}
			s.respond(w, http.StatusOK, q)
		case http.MethodDelete:
			deleted, err := s.store.Delete(id)
			if err != nil {
				s.fail(w, err)
				return
			}
			if !deleted {
				s.respondError(w, http.StatusNotFound, store.ErrNotFound.Error())
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, id int, action string) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var q domain.Question
	var err error
	switch action {
	case "complete", "review":
		var input domain.ReviewInput
		if decodeErr := json.NewDecoder(r.Body).Decode(&input); decodeErr != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if action == "complete" {
			q, err = s.store.Complete(id, input)
		} else {
			q, err = s.store.Review(id, input)
		}
	case "reset":
		q, err = s.store.Reset(id)
	default:
		s.respondError(w, http.StatusNotFound, "unknown action")
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, q)
}

// handleDue returns the due/overdue/upcoming partition.
func (s *Server) handleDue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.respond(w, http.StatusOK, s.store.DueQuestions())
	}
}

// handleStats returns the derived summary counts.
func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.respond(w, http.StatusOK, s.store.Stats())
	}
}

// fail maps a store error onto the HTTP response. Internal details never
// reach the client; unexpected failures are logged and come back generic.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, store.ErrNotFound.Error())
	case errors.Is(err, store.ErrDuplicateURL):
		s.respondError(w, http.StatusConflict, store.ErrDuplicateURL.Error())
	case errors.As(err, &validationErrs):
		s.respondError(w, http.StatusBadRequest, validationErrs.Error())
	default:
		slog.Error("request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, map[string]string{"error": message})
}
