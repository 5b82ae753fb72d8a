package sandbox

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Item is one row on the fake board. Columns maps column id to its text value.
type Item struct {
	ID      string
	Name    string
	Columns map[string]string
}

// Board serves a fake monday.com GraphQL endpoint backed by an in-memory
// item list. It understands the two operations the sync issues: an
// items_page listing and a pair of change_simple_column_value writes.
type Board struct {
	// Key, when set, is the only accepted API key.
	Key string

	mu    sync.Mutex
	items []*Item
}

// AddItem seeds one row and returns its generated id.
func (b *Board) AddItem(name string, columns map[string]string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make(map[string]string, len(columns))
	for k, v := range columns {
		cols[k] = v
	}
	it := &Item{ID: uuid.NewString(), Name: name, Columns: cols}
	b.items = append(b.items, it)
	return it.ID
}

// Item returns a copy of the row with the given id.
func (b *Board) Item(id string) (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, it := range b.items {
		if it.ID == id {
			cols := make(map[string]string, len(it.Columns))
			for k, v := range it.Columns {
				cols[k] = v
			}
			return Item{ID: it.ID, Name: it.Name, Columns: cols}, true
		}
	}
	return Item{}, false
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (b *Board) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if b.Key != "" && req.Header.Get("Authorization") != b.Key {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var gql graphQLRequest
	if err := json.NewDecoder(req.Body).Decode(&gql); err != nil {
		graphQLError(w, "malformed request: "+err.Error())
		return
	}

	switch {
	case strings.Contains(gql.Query, "items_page"):
		b.serveItemsPage(w, gql.Variables)
	case strings.Contains(gql.Query, "change_simple_column_value"):
		b.serveUpdate(w, gql.Variables)
	default:
		graphQLError(w, "unsupported operation")
	}
}

func (b *Board) serveItemsPage(w http.ResponseWriter, vars map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	limit := intVar(vars, "limit", 100)
	offset := 0
	if c, ok := vars["cursor"].(string); ok && c != "" {
		offset, _ = strconv.Atoi(c)
	}

	var colIDs []string
	if raw, ok := vars["cols"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				colIDs = append(colIDs, s)
			}
		}
	}

	end := offset + limit
	if end > len(b.items) {
		end = len(b.items)
	}
	items := []map[string]any{}
	for _, it := range b.items[offset:end] {
		cvs := []map[string]string{}
		for _, id := range colIDs {
			cvs = append(cvs, map[string]string{"id": id, "text": it.Columns[id]})
		}
		items = append(items, map[string]any{
			"id":            it.ID,
			"name":          it.Name,
			"column_values": cvs,
		})
	}

	cursor := ""
	if end < len(b.items) {
		cursor = strconv.Itoa(end)
	}

	writeJSON(w, map[string]any{
		"data": map[string]any{
			"boards": []any{
				map[string]any{
					"items_page": map[string]any{
						"cursor": cursor,
						"items":  items,
					},
				},
			},
		},
	})
}

func (b *Board) serveUpdate(w http.ResponseWriter, vars map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	itemID, _ := vars["item"].(string)
	var target *Item
	for _, it := range b.items {
		if it.ID == itemID {
			target = it
			break
		}
	}
	if target == nil {
		graphQLError(w, fmt.Sprintf("item %s not found", itemID))
		return
	}

	for col, val := range map[string]string{
		stringVar(vars, "scoreCol"): stringVar(vars, "score"),
		stringVar(vars, "gradeCol"): stringVar(vars, "grade"),
	} {
		if col != "" {
			target.Columns[col] = val
		}
	}

	writeJSON(w, map[string]any{
		"data": map[string]any{
			"updateScore": map[string]string{"id": itemID},
			"updateGrade": map[string]string{"id": itemID},
		},
	})
}

func intVar(vars map[string]any, key string, fallback int) int {
	if f, ok := vars[key].(float64); ok && f > 0 {
		return int(f)
	}
	return fallback
}

func stringVar(vars map[string]any, key string) string {
	s, _ := vars[key].(string)
	return s
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func graphQLError(w http.ResponseWriter, msg string) {
	writeJSON(w, map[string]any{
		"errors": []any{map[string]string{"message": msg}},
	})
}
