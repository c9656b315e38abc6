package resolve

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/anupamr/nameserve/pkg/directory"
)

// snapshot couples a member list with the index built from it. The two are
// published together so a query never consults an index built from a
// different list than the one it falls back to.
type snapshot struct {
	members []directory.Member
	index   *Index
}

var emptySnapshot = &snapshot{index: BuildIndex(nil)}

// Resolver is the query surface over a directory snapshot. It is
// constructed explicitly and owned by whoever wires the system together;
// there is no process-wide instance.
//
// Reads are lock-free: the current snapshot is immutable and swapped
// atomically by Refresh. Match and Suggest never block once a snapshot is
// loaded.
type Resolver struct {
	source directory.Source
	snap   atomic.Pointer[snapshot]
	flight singleflight.Group
}

// New builds a resolver over the given source. The resolver starts empty;
// call Refresh to load the first snapshot.
func New(source directory.Source) *Resolver {
	r := &Resolver{source: source}
	r.snap.Store(emptySnapshot)
	return r
}

// Refresh reloads the directory and rebuilds the index, publishing both as
// one atomic swap. Concurrent calls collapse into a single load. On any
// load error the previous snapshot stays in place untouched; a failed
// refresh is invisible to readers. The caller bounds the load with ctx.
func (r *Resolver) Refresh(ctx context.Context) error {
	_, err, _ := r.flight.Do("refresh", func() (any, error) {
		members, err := r.source.Load(ctx)
		if err != nil {
			return nil, err
		}
		next := &snapshot{members: members, index: BuildIndex(members)}
		r.snap.Store(next)
		log.Infof("directory refreshed: %d members, %d index keys", len(members), next.index.Len())
		return nil, nil
	})
	return err
}

// Match resolves a free-text name to a member.
func (r *Resolver) Match(query string) (MatchResult, error) {
	s := r.snap.Load()
	return Match(query, s.members, s.index)
}

// ResolveID resolves a free-text name to a member id.
func (r *Resolver) ResolveID(query string) (string, error) {
	res, err := r.Match(query)
	if err != nil {
		return "", err
	}
	return res.Member.ID, nil
}

// Suggest ranks members against a partial name for autocomplete.
func (r *Resolver) Suggest(partial string, limit int) []Suggestion {
	s := r.snap.Load()
	return Suggest(partial, s.members, limit)
}

// Members returns a copy of the current member list in directory order.
func (r *Resolver) Members() []directory.Member {
	s := r.snap.Load()
	out := make([]directory.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Len reports the number of members in the current snapshot.
func (r *Resolver) Len() int {
	return len(r.snap.Load().members)
}

// Index exposes the current snapshot's index for diagnostics.
func (r *Resolver) Index() *Index {
	return r.snap.Load().index
}
