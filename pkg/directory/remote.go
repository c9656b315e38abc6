package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// apiVersion is the workspace API revision this client speaks.
	apiVersion = "2022-06-28"

	// maxPageSize is the largest page the users endpoint will serve.
	maxPageSize = 100
)

// RemoteSource pages through a workspace users API, following the
// continuation cursor until the provider reports no more pages.
type RemoteSource struct {
	baseURL  string
	token    string
	pageSize int
	client   *http.Client
}

// NewRemoteSource builds a remote source for the given API base URL and
// bearer token. pageSize is clamped to [1, 100]; zero selects the maximum.
func NewRemoteSource(baseURL, token string, pageSize int) *RemoteSource {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &RemoteSource{
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// userPage mirrors one page of the users endpoint response.
type userPage struct {
	Results    []wireUser `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

type wireUser struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Person struct {
		Email string `json:"email"`
	} `json:"person"`
}

// Load fetches every page of the user list. Non-person entries are dropped
// and ids repeated across overlapping pages are kept once, first seen wins.
func (s *RemoteSource) Load(ctx context.Context) ([]Member, error) {
	var all []Member
	seen := make(map[string]struct{})
	cursor := ""

	for {
		page, err := s.fetchPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		for _, u := range page.Results {
			if u.Object != "user" || ParseKind(u.Type) != KindPerson {
				continue
			}
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			all = append(all, Member{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Person.Email,
				Kind:  KindPerson,
			})
		}
		log.Debugf("fetched user page: %d entries (total %d)", len(page.Results), len(all))
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}
	log.Infof("fetched %d workspace members", len(all))
	return all, nil
}

func (s *RemoteSource) fetchPage(ctx context.Context, cursor string) (*userPage, error) {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(s.pageSize))
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/users?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("users endpoint returned %d: %s", resp.StatusCode, body)
	}

	var page userPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding users page: %w", err)
	}
	return &page, nil
}
