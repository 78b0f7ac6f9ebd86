package suggest

import (
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/queue"
)

// Merge filters candidates against the snapshot. Candidates already queued,
// of a different kind than the active entry, or repeated are dropped; the
// provider order is kept. A snapshot without an active entry yields nil.
func Merge(s queue.Snapshot, candidates []media.Item) []media.Item {
	kind, ok := s.Kind()
	if !ok || len(candidates) == 0 {
		return nil
	}

	queued := s.IDs()
	seen := make(map[string]struct{}, len(candidates))
	var out []media.Item
	for _, c := range candidates {
		if !sameKind(kind, c.Kind) {
			continue
		}
		if _, dup := queued[c.ID]; dup {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func sameKind(active, k media.Kind) bool {
	switch active {
	case media.KindMusic:
		return k == media.KindMusic
	case media.KindEpisode:
		return k == media.KindEpisode
	default:
		return false
	}
}
