package docstore

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/xpathlang/internal/xhost"
)

// Collections resolves each glob pattern in patterns against the store's
// registered document names, returning a map keyed by the literal pattern
// string. internal/builtins' fn:collection does only an exact map lookup
// against the URI it was called with (spec.md's Non-goals exclude URI
// resolution machinery), so the glob expansion `collection('docs/**/*.xml')`
// needs has to happen here, upstream, before the result ever reaches the
// dynamic context.
func (s *Store) Collections(patterns []string) (map[string][]xhost.Node, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	all, err := s.All()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]xhost.Node, len(patterns))
	for _, pattern := range patterns {
		var matched []xhost.Node
		for _, name := range names {
			ok, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("docstore: bad collection pattern %q: %w", pattern, err)
			}
			if ok {
				matched = append(matched, all[name].Root)
			}
		}
		out[pattern] = matched
	}
	return out, nil
}
