package server

import (
	"fmt"

	"github.com/anupamr/nameserve/pkg/directory"
	"github.com/anupamr/nameserve/pkg/resolve"
)

// UserResponse is the wire shape of one workspace member.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

func toUserResponse(m directory.Member) UserResponse {
	return UserResponse{ID: m.ID, Name: m.Name, Email: m.Email, Type: string(m.Kind)}
}

// MatchRequest carries the name to resolve.
type MatchRequest struct {
	Name string `json:"name"`
}

// MatchResponse reports a resolution attempt. A no-match is a normal
// response with Found false and ranked near-miss suggestions, not an
// error status.
type MatchResponse struct {
	Found           bool             `json:"found"`
	User            *UserResponse    `json:"user,omitempty"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
	Suggestions     []SuggestionItem `json:"suggestions"`
	OriginalSearch  string           `json:"original_search"`
}

// SuggestionsRequest carries a partial name for autocomplete.
type SuggestionsRequest struct {
	PartialName string `json:"partial_name"`
	Limit       int    `json:"limit,omitempty"`
}

// SuggestionItem is one ranked autocomplete entry.
type SuggestionItem struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Score   float64 `json:"score"`
	Display string  `json:"display"`
}

func toSuggestionItem(s resolve.Suggestion) SuggestionItem {
	return SuggestionItem{
		ID:      s.Member.ID,
		Name:    s.Member.Name,
		Email:   s.Member.Email,
		Score:   s.Score,
		Display: fmt.Sprintf("%s (%s)", s.Member.Name, s.Member.Email),
	}
}

// SuggestionsResponse is the ranked autocomplete list.
type SuggestionsResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`
	TotalFound  int              `json:"total_found"`
}

// KeyEntry is one index key with the member it resolves to.
type KeyEntry struct {
	Key      string `json:"key"`
	MemberID string `json:"member_id"`
}

// KeysResponse lists the index keys under a prefix.
type KeysResponse struct {
	Prefix     string     `json:"prefix"`
	Keys       []KeyEntry `json:"keys"`
	TotalFound int        `json:"total_found"`
}

// RefreshResponse reports a completed directory refresh.
type RefreshResponse struct {
	Status  string `json:"status"`
	Members int    `json:"members"`
}

// HealthResponse reports service liveness and snapshot size.
type HealthResponse struct {
	Status       string `json:"status"`
	MembersCount int    `json:"workspace_users_count"`
	Error        string `json:"error,omitempty"`
}

// ErrorResponse is the body for 4xx/5xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
