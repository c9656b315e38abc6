/*
Package server exposes the resolver over HTTP.

The surface mirrors the workspace endpoints the frontend consumes: a full
member list for dropdowns, name matching, autocomplete suggestions, an
explicit refresh trigger, and a health probe. Matching and suggestions are
lock-free reads; refresh is the only handler that touches the source.
*/
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anupamr/nameserve/pkg/config"
	"github.com/anupamr/nameserve/pkg/resolve"
)

// Suggestions returned alongside a failed match.
const matchSuggestLimit = 3

// Server wires the resolver into HTTP handlers.
type Server struct {
	resolver       *resolve.Resolver
	defaultLimit   int
	maxLimit       int
	refreshTimeout time.Duration
}

// New builds a server around a resolver using the given config.
func New(r *resolve.Resolver, cfg *config.Config) *Server {
	return &Server{
		resolver:       r,
		defaultLimit:   cfg.Server.DefaultLimit,
		maxLimit:       cfg.Server.MaxLimit,
		refreshTimeout: time.Duration(cfg.Source.RefreshTimeoutSecs) * time.Second,
	}
}

// Routes returns the HTTP handler for the workspace API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/workspace", func(r chi.Router) {
		r.Get("/users", s.handleUsers)
		r.Post("/users/match", s.handleMatch)
		r.Post("/users/suggestions", s.handleSuggestions)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/health", s.handleHealth)
		r.Get("/keys", s.handleKeys)
	})
	return r
}

func (s *Server) handleUsers(w http.ResponseWriter, req *http.Request) {
	members := s.resolver.Members()
	out := make([]UserResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toUserResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMatch(w http.ResponseWriter, req *http.Request) {
	var body MatchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.resolver.Match(body.Name)
	switch {
	case errors.Is(err, resolve.ErrEmptyQuery):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	case errors.Is(err, resolve.ErrNoMatch):
		near := s.resolver.Suggest(body.Name, matchSuggestLimit)
		items := make([]SuggestionItem, 0, len(near))
		for _, sg := range near {
			items = append(items, toSuggestionItem(sg))
		}
		writeJSON(w, http.StatusOK, MatchResponse{
			Found:          false,
			Suggestions:    items,
			OriginalSearch: body.Name,
		})
		return
	case err != nil:
		log.Errorf("match failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "match failed"})
		return
	}

	user := toUserResponse(result.Member)
	score := result.Score
	writeJSON(w, http.StatusOK, MatchResponse{
		Found:           true,
		User:            &user,
		ConfidenceScore: &score,
		OriginalSearch:  body.Name,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, req *http.Request) {
	var body SuggestionsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	limit := body.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	suggestions := s.resolver.Suggest(body.PartialName, limit)
	items := make([]SuggestionItem, 0, len(suggestions))
	for _, sg := range suggestions {
		items = append(items, toSuggestionItem(sg))
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: items, TotalFound: len(items)})
}

func (s *Server) handleRefresh(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), s.refreshTimeout)
	defer cancel()

	if err := s.resolver.Refresh(ctx); err != nil {
		log.Errorf("refresh failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{Status: "ok", Members: s.resolver.Len()})
}

// handleKeys dumps the index keys under a prefix. Debug surface for
// inspecting what lookups a directory snapshot answers.
func (s *Server) handleKeys(w http.ResponseWriter, req *http.Request) {
	prefix := req.URL.Query().Get("prefix")
	entries := make([]KeyEntry, 0)
	err := s.resolver.Index().VisitPrefix(prefix, func(key, id string) error {
		entries = append(entries, KeyEntry{Key: key, MemberID: id})
		return nil
	})
	if err != nil {
		log.Errorf("key walk failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "key walk failed"})
		return
	}
	writeJSON(w, http.StatusOK, KeysResponse{Prefix: prefix, Keys: entries, TotalFound: len(entries)})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		MembersCount: s.resolver.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writing response: %v", err)
	}
}
