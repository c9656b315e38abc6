/*
Package directory supplies the list of workspace members that the resolver
indexes. A member list can come from a local snapshot file or from a
cursor-paginated remote workspace API; either way the package delivers the
same cleaned sequence: person entries only, deduplicated by id, source order
preserved.
*/
package directory

import (
	"context"
	"errors"
)

// ErrSourceUnavailable is returned when no member list could be obtained
// from a source. Callers are expected to keep serving their previous
// snapshot when a refresh fails with it.
var ErrSourceUnavailable = errors.New("directory source unavailable")

// Kind classifies a directory entry. Workspace APIs also list bots and
// integrations; everything that is not a person is folded into KindOther
// and filtered out before the list leaves this package.
type Kind string

const (
	KindPerson Kind = "person"
	KindOther  Kind = "other"
)

// ParseKind maps a wire-level user type onto a Kind.
func ParseKind(s string) Kind {
	if s == string(KindPerson) {
		return KindPerson
	}
	return KindOther
}

// Member is a single workspace directory entry. Members are immutable once
// loaded and uniquely identified by ID.
type Member struct {
	ID    string `json:"id" msgpack:"id"`
	Name  string `json:"name" msgpack:"name"`
	Email string `json:"email" msgpack:"email"`
	Kind  Kind   `json:"type" msgpack:"type"`
}

// Source loads the current member list. Load is the only blocking operation
// in the resolution pipeline; implementations should honor ctx cancellation.
type Source interface {
	Load(ctx context.Context) ([]Member, error)
}

// sanitize filters a raw member list down to person entries and drops
// repeated ids, keeping the first occurrence. Order is otherwise preserved.
func sanitize(raw []Member) []Member {
	members := make([]Member, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, m := range raw {
		if m.Kind != KindPerson {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		members = append(members, m)
	}
	return members
}
