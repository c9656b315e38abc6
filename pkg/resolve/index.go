/*
Package resolve maps free-text human names onto canonical workspace
directory members.

Resolution runs in two stages: an exact lookup against a precomputed
multi-key index (full name, first name, last name, middle tokens,
"first last", initials), then a heuristic fuzzy pass over the whole
member list when the index misses. A separate additive ranker serves
partial-input suggestions for autocomplete.
*/
package resolve

import (
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/anupamr/nameserve/pkg/directory"
)

// Index is the exact-lookup table from normalized name keys to member ids.
// Keys live in a patricia trie so that exact lookup and prefix walks share
// one structure. An Index is immutable after BuildIndex returns.
type Index struct {
	trie *patricia.Trie
	size int
}

// BuildIndex derives the multi-key index from a member list. For each
// member with a non-empty trimmed name it registers the full name, the
// first token, the last token and "first last" (two or more tokens), every
// interior token, and the initials string.
//
// Keys are not unique across members: a later member in the list overwrites
// an earlier mapping for the same key. Shared short keys such as a common
// first name therefore resolve to whichever member was indexed last. That
// trade-off is deliberate and downstream behavior depends on it; do not
// "fix" it by rejecting collisions. The build is pure and deterministic
// over the given member order.
func BuildIndex(members []directory.Member) *Index {
	ix := &Index{trie: patricia.NewTrie()}
	for _, m := range members {
		ix.add(m)
	}
	return ix
}

func (ix *Index) add(m directory.Member) {
	name := normalize(m.Name)
	if name == "" {
		return
	}
	ix.set(name, m.ID)

	tokens := nameTokens(name)
	if len(tokens) == 0 {
		return
	}
	ix.set(tokens[0], m.ID)
	if len(tokens) >= 2 {
		last := tokens[len(tokens)-1]
		ix.set(last, m.ID)
		ix.set(tokens[0]+" "+last, m.ID)
		for _, t := range tokens[1 : len(tokens)-1] {
			ix.set(t, m.ID)
		}
	}
	ix.set(initialsKey(tokens), m.ID)
}

func (ix *Index) set(key, id string) {
	p := patricia.Prefix(key)
	if ix.trie.Get(p) == nil {
		ix.size++
	}
	ix.trie.Set(p, id)
}

// Lookup resolves a key to a member id. The key is normalized before the
// trie is consulted.
func (ix *Index) Lookup(key string) (string, bool) {
	if ix == nil {
		return "", false
	}
	item := ix.trie.Get(patricia.Prefix(normalize(key)))
	if item == nil {
		return "", false
	}
	return item.(string), true
}

// Len reports the number of distinct keys.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return ix.size
}

// VisitPrefix walks every key under the given prefix in trie order,
// stopping early if fn returns an error.
func (ix *Index) VisitPrefix(prefix string, fn func(key, id string) error) error {
	if ix == nil {
		return nil
	}
	return ix.trie.VisitSubtree(patricia.Prefix(normalize(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		return fn(string(p), item.(string))
	})
}
