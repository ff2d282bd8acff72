// Package geo groups guestbook messages by rounded geographic location.
//
// Two messages share a map marker when their coordinates round to the same
// 4-decimal-place key (roughly an 11 metre cell at the equator). Grouping is a
// pure function of the rounding: no other message field participates.
package geo

import (
	"strconv"

	"github.com/nfrund/guestmap/internal/domain"
)

// Key returns the bucket key for a coordinate pair: both values formatted to
// exactly 4 decimal places and concatenated.
//
// FormatFloat rounds ties half to even, so a binary-exact tie like 0.53125
// keys as "0.5312" where a round-half-up formatter would give "0.5313". Real
// GPS fixes never land exactly on such a tie, and the key only has to be
// self-consistent, not match any particular rounding convention.
func Key(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 4, 64) + strconv.FormatFloat(lng, 'f', 4, 64)
}

// Bucket is a group of messages sharing a rounded location. It is derived
// state, recomputed on every listing, and never persisted.
type Bucket struct {
	// Key is the rounded-coordinate key shared by every message in the bucket.
	Key string
	// Primary is the first message seen for the key. It provides the marker
	// position and leads the popup.
	Primary domain.Message
	// Others holds later messages with the same key, in arrival order.
	Others []domain.Message
}

// Group walks msgs once, in order, and folds them into buckets. The first
// message observed for a key starts a bucket and fixes the bucket's place in
// the output; every later message with that key lands in the bucket's Others.
//
// For a fixed input order the output is fully deterministic. Reordering the
// input can change which message is primary, so callers that need stable
// markers across reloads must feed Group a canonically ordered listing.
func Group(msgs []domain.Message) []Bucket {
	seen := make(map[string]int, len(msgs))
	buckets := make([]Bucket, 0, len(msgs))

	for _, msg := range msgs {
		key := Key(msg.Latitude, msg.Longitude)
		if i, ok := seen[key]; ok {
			buckets[i].Others = append(buckets[i].Others, msg)
			continue
		}
		seen[key] = len(buckets)
		buckets = append(buckets, Bucket{Key: key, Primary: msg})
	}

	return buckets
}

// Messages returns every message in the bucket, primary first.
func (b Bucket) Messages() []domain.Message {
	out := make([]domain.Message, 0, 1+len(b.Others))
	out = append(out, b.Primary)
	return append(out, b.Others...)
}
