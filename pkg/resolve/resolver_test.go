package resolve

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anupamr/nameserve/pkg/directory"
)

// stubSource serves a fixed member list, or a fixed error, per Load call.
type stubSource struct {
	mu      sync.Mutex
	members []directory.Member
	err     error
}

func (s *stubSource) Load(ctx context.Context) ([]directory.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.members, nil
}

func (s *stubSource) set(members []directory.Member, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members, s.err = members, err
}

// blockingSource blocks in Load until its context is done.
type blockingSource struct{}

func (blockingSource) Load(ctx context.Context) ([]directory.Member, error) {
	<-ctx.Done()
	return nil, directory.ErrSourceUnavailable
}

func TestResolverRefreshAndResolve(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	id, err := r.ResolveID("Dinesh Kumar")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	// Worked example: the shared last name resolves via the index's
	// last-writer-wins policy.
	id, err = r.ResolveID("Kumar")
	require.NoError(t, err)
	assert.Equal(t, "u2", id)

	// Typo falls back to the fuzzy path.
	id, err = r.ResolveID("Dines")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestResolverEmptyQuery(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	_, err := r.ResolveID("")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestResolverBeforeFirstRefresh(t *testing.T) {
	r := New(&stubSource{})

	_, err := r.ResolveID("anyone")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Empty(t, r.Suggest("any", 5))
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Members())
}

func TestResolverRefreshFailClosed(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))
	require.Equal(t, 2, r.Len())

	src.set(nil, directory.ErrSourceUnavailable)
	err := r.Refresh(context.Background())
	require.ErrorIs(t, err, directory.ErrSourceUnavailable)

	// The failed refresh is invisible to readers.
	assert.Equal(t, 2, r.Len())
	id, err := r.ResolveID("Dinesh")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestResolverRefreshTimeout(t *testing.T) {
	r := New(blockingSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.Refresh(ctx)
	assert.ErrorIs(t, err, directory.ErrSourceUnavailable)
	assert.Zero(t, r.Len())
}

func TestResolverRefreshReplacesSnapshot(t *testing.T) {
	src := &stubSource{members: []directory.Member{member("u1", "Dinesh Kumar")}}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	src.set([]directory.Member{member("u9", "Nina Rao")}, nil)
	require.NoError(t, r.Refresh(context.Background()))

	// Old members are gone along with their index keys.
	_, err := r.ResolveID("Dinesh Kumar")
	assert.ErrorIs(t, err, ErrNoMatch)
	id, err := r.ResolveID("Nina Rao")
	require.NoError(t, err)
	assert.Equal(t, "u9", id)
}

func TestResolverConcurrentReadsDuringRefresh(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// Every read must see a consistent snapshot: either both
				// Kumars or neither, never a half-built index.
				members := r.Members()
				if len(members) != 0 && len(members) != 2 {
					t.Errorf("observed partial snapshot of %d members", len(members))
					return
				}
				r.Suggest("di", 5)
				if id, err := r.ResolveID("Dinesh Kumar"); err == nil && id != "u1" {
					t.Errorf("unexpected id %s", id)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, r.Refresh(context.Background()))
	}
	close(stop)
	wg.Wait()
}

func TestResolverMembersIsACopy(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	members := r.Members()
	members[0].Name = "mutated"

	fresh := r.Members()
	assert.Equal(t, "Dinesh Kumar", fresh[0].Name)
}

func TestResolverMatchConfidence(t *testing.T) {
	src := &stubSource{members: kumarDirectory}
	r := New(src)
	require.NoError(t, r.Refresh(context.Background()))

	res, err := r.Match("Dinesh Kumar")
	require.NoError(t, err)
	assert.True(t, res.Exact)
	assert.Equal(t, 1.0, res.Score)

	res, err = r.Match("Dines")
	require.NoError(t, err)
	assert.False(t, res.Exact)
	assert.GreaterOrEqual(t, res.Score, 0.6)
}

func TestResolverSourceErrorsAreWrapped(t *testing.T) {
	wrapped := errors.New("boom")
	r := New(&stubSource{err: wrapped})

	err := r.Refresh(context.Background())
	assert.ErrorIs(t, err, wrapped)
}
