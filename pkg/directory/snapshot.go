package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// FileSource reads a member list from a local snapshot file. Snapshots
// ending in .json hold a plain JSON array; anything else is treated as the
// msgpack binary format written by WriteSnapshot.
type FileSource struct {
	Path string
}

// Load reads and sanitizes the snapshot.
func (s FileSource) Load(ctx context.Context) ([]Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var raw []Member
	if isJSONSnapshot(s.Path) {
		err = json.Unmarshal(data, &raw)
	} else {
		err = msgpack.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot %s: %v", ErrSourceUnavailable, s.Path, err)
	}

	members := sanitize(raw)
	log.Debugf("loaded %d members from snapshot %s", len(members), s.Path)
	return members, nil
}

// WriteSnapshot persists a member list next to the format rules FileSource
// reads: JSON for .json paths, msgpack otherwise.
func WriteSnapshot(path string, members []Member) error {
	var (
		data []byte
		err  error
	)
	if isJSONSnapshot(path) {
		data, err = json.MarshalIndent(members, "", "  ")
	} else {
		data, err = msgpack.Marshal(members)
	}
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

func isJSONSnapshot(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Verify checks an extracted member list before it is persisted or
// published: the list must be non-empty, every member needs an id and a
// kind, and ids must be unique. Ids that are not UUID-shaped are logged but
// tolerated, since self-hosted workspaces mint their own formats.
func Verify(members []Member) error {
	if len(members) == 0 {
		return fmt.Errorf("no members in extraction")
	}
	seen := make(map[string]int, len(members))
	for i, m := range members {
		if m.ID == "" {
			return fmt.Errorf("member %d has no id", i)
		}
		if m.Kind == "" {
			return fmt.Errorf("member %d (%s) has no kind", i, m.ID)
		}
		if prev, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate member id %s at positions %d and %d", m.ID, prev, i)
		}
		seen[m.ID] = i
		if err := uuid.Validate(m.ID); err != nil {
			log.Warnf("member id %s is not a UUID", m.ID)
		}
	}
	return nil
}

// Fallback tries each source in order and returns the first member list
// obtained. It mirrors the usual wiring of a local snapshot backed by the
// remote API.
type Fallback []Source

func (f Fallback) Load(ctx context.Context) ([]Member, error) {
	var lastErr error
	for _, src := range f {
		members, err := src.Load(ctx)
		if err == nil {
			return members, nil
		}
		log.Debugf("directory source failed, trying next: %v", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrSourceUnavailable
	}
	return nil, lastErr
}
