// Package sandbox provides in-process fakes of the two provider APIs so the
// sync can be exercised end to end with no credentials and no network.
//
// The fakes implement just enough surface for the real clients: paginated
// portfolio reads on the ratings side, items_page reads and
// change_simple_column_value writes on the board side.
package sandbox

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// RatingsEntry is one scored company served by the fake portfolio.
type RatingsEntry struct {
	Domain string   `json:"domain"`
	Score  *float64 `json:"score,omitempty"`
	Grade  string   `json:"grade,omitempty"`
}

// Ratings serves a fake SecurityScorecard portfolio endpoint.
// The zero value serves an empty portfolio accepting any key.
type Ratings struct {
	// Key, when set, is the only accepted API key.
	Key string
	// Entries is the full portfolio, served in order.
	Entries []RatingsEntry
}

func (r *Ratings) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.Key != "" && req.Header.Get("Authorization") != "Token "+r.Key {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	limit, err := strconv.Atoi(req.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, err := strconv.Atoi(req.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	end := offset + limit
	if end > len(r.Entries) {
		end = len(r.Entries)
	}
	var page []RatingsEntry
	if offset < len(r.Entries) {
		page = r.Entries[offset:end]
	}
	if page == nil {
		page = []RatingsEntry{}
	}

	links := map[string]any{}
	if end < len(r.Entries) {
		links["next"] = map[string]string{"href": req.URL.String()}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"entries": page,
		"links":   links,
	})
}
