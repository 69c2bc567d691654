// Package keyset encodes (created_at, id) row positions as opaque paging
// cursors. Only repositories parse these; pagers and HTTP clients treat
// them as blobs.
package keyset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/juan-beltranos/catalogo-interactivo/internal/paging"
)

// Encode packs a row boundary into a cursor.
func Encode(createdAt time.Time, id string) paging.Cursor {
	return paging.Cursor(strconv.FormatInt(createdAt.UnixNano(), 10) + "|" + id)
}

// Decode unpacks a cursor produced by Encode.
func Decode(c paging.Cursor) (time.Time, string, error) {
	raw := string(c)
	nanosStr, id, ok := strings.Cut(raw, "|")
	if !ok || id == "" {
		return time.Time{}, "", fmt.Errorf("malformed cursor %q", raw)
	}
	nanos, err := strconv.ParseInt(nanosStr, 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor %q: %w", raw, err)
	}
	return time.Unix(0, nanos).UTC(), id, nil
}
