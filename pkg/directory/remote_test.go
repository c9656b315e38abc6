package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUser struct {
	Object string            `json:"object"`
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Person map[string]string `json:"person,omitempty"`
}

func person(id, name, email string) fakeUser {
	return fakeUser{Object: "user", ID: id, Name: name, Type: "person", Person: map[string]string{"email": email}}
}

func bot(id, name string) fakeUser {
	return fakeUser{Object: "user", ID: id, Name: name, Type: "bot"}
}

// fakeUsersAPI serves pre-baked pages keyed by start_cursor and records the
// requests it saw.
type fakeUsersAPI struct {
	t        *testing.T
	pages    map[string]map[string]any
	requests []*http.Request
}

func (f *fakeUsersAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests = append(f.requests, r.Clone(context.Background()))
	page, ok := f.pages[r.URL.Query().Get("start_cursor")]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(page))
}

func TestRemoteSourcePagination(t *testing.T) {
	api := &fakeUsersAPI{
		t: t,
		pages: map[string]map[string]any{
			"": {
				"results":     []fakeUser{person("u1", "Dinesh Kumar", "dinesh@corp.test"), bot("b1", "Deploy Bot")},
				"has_more":    true,
				"next_cursor": "c2",
			},
			"c2": {
				"results":     []fakeUser{person("u2", "Divya Kumar", "divya@corp.test"), person("u1", "Dinesh Kumar", "dinesh@corp.test")},
				"has_more":    false,
				"next_cursor": nil,
			},
		},
	}
	ts := httptest.NewServer(api)
	defer ts.Close()

	src := NewRemoteSource(ts.URL, "secret-token", 2)
	members, err := src.Load(context.Background())
	require.NoError(t, err)

	// Bot filtered, u1's second occurrence across the page overlap dropped,
	// order preserved.
	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].ID)
	assert.Equal(t, "Dinesh Kumar", members[0].Name)
	assert.Equal(t, "dinesh@corp.test", members[0].Email)
	assert.Equal(t, KindPerson, members[0].Kind)
	assert.Equal(t, "u2", members[1].ID)

	require.Len(t, api.requests, 2)
	first, second := api.requests[0], api.requests[1]
	assert.Equal(t, "/v1/users", first.URL.Path)
	assert.Equal(t, "2", first.URL.Query().Get("page_size"))
	assert.Empty(t, first.URL.Query().Get("start_cursor"))
	assert.Equal(t, "Bearer secret-token", first.Header.Get("Authorization"))
	assert.Equal(t, apiVersion, first.Header.Get("Notion-Version"))
	assert.Equal(t, "c2", second.URL.Query().Get("start_cursor"))
}

func TestRemoteSourcePageSizeClamped(t *testing.T) {
	assert.Equal(t, maxPageSize, NewRemoteSource("http://x", "t", 0).pageSize)
	assert.Equal(t, maxPageSize, NewRemoteSource("http://x", "t", 500).pageSize)
	assert.Equal(t, 10, NewRemoteSource("http://x", "t", 10).pageSize)
}

func TestRemoteSourceServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	src := NewRemoteSource(ts.URL, "bad-token", 100)
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRemoteSourceUnreachable(t *testing.T) {
	src := NewRemoteSource("http://127.0.0.1:1", "t", 100)
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRemoteSourceContextCancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewRemoteSource(ts.URL, "t", 100)
	_, err := src.Load(ctx)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
