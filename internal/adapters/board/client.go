// Package board reads and updates items on a monday.com board through the
// GraphQL API.
//
// Reads follow the same all-or-nothing policy as the ratings side: a failed
// page aborts the listing. Writes are per-item and recoverable; the caller
// counts failures and moves on.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
	"github.com/mgeis2/ssc-to-monday/internal/domain/normalize"
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
)

// Default client configuration constants.
const (
	defaultBaseURL  = "https://api.monday.com/v2"
	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second
)

// Columns names the three board columns the sync touches.
type Columns struct {
	Domain string
	Score  string
	Grade  string
}

// Client talks to one board.
type Client struct {
	apiKey  string
	boardID string
	cols    Columns

	baseURL    string
	httpClient *http.Client
	pageSize   int
	log        logger.Logger
}

// New constructs a Client for the given board and column set.
func New(apiKey, boardID string, cols Columns, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		boardID:    boardID,
		cols:       cols,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		pageSize:   defaultPageSize,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const itemsQuery = `query ($board: [ID!], $limit: Int!, $cursor: String, $cols: [String!]) {
  boards(ids: $board) {
    items_page(limit: $limit, cursor: $cursor) {
      cursor
      items {
        id
        name
        column_values(ids: $cols) {
          id
          text
        }
      }
    }
  }
}`

type itemsData struct {
	Boards []struct {
		ItemsPage struct {
			Cursor string `json:"cursor"`
			Items  []struct {
				ID           string `json:"id"`
				Name         string `json:"name"`
				ColumnValues []struct {
					ID   string `json:"id"`
					Text string `json:"text"`
				} `json:"column_values"`
			} `json:"items"`
		} `json:"items_page"`
	} `json:"boards"`
}

// Items lists every item on the board, extracting and normalizing the value
// of the domain column. Items without a usable domain come back with an
// empty Domain; the matcher counts them as skips.
func (c *Client) Items(ctx context.Context) ([]model.BoardItem, error) {
	var out []model.BoardItem
	cursor := ""

	for {
		vars := map[string]any{
			"board": []string{c.boardID},
			"limit": c.pageSize,
			"cols":  []string{c.cols.Domain},
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		var data itemsData
		if err := c.query(ctx, itemsQuery, vars, &data); err != nil {
			return nil, errPage(err)
		}
		if len(data.Boards) == 0 {
			return nil, errPage(fmt.Errorf("board %s not found", c.boardID))
		}

		page := data.Boards[0].ItemsPage
		for _, it := range page.Items {
			item := model.BoardItem{ID: it.ID, Name: it.Name}
			for _, cv := range it.ColumnValues {
				if cv.ID == c.cols.Domain && cv.Text != "" {
					item.Domain = normalize.Key(cv.Text)
				}
			}
			out = append(out, item)
		}

		c.log.Debug(ctx, "fetched board page",
			logger.Int("items", len(page.Items)),
			logger.Int("total", len(out)))

		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	return out, nil
}

const updateMutation = `mutation ($board: ID!, $item: ID!, $scoreCol: String!, $score: String!, $gradeCol: String!, $grade: String!) {
  updateScore: change_simple_column_value(board_id: $board, item_id: $item, column_id: $scoreCol, value: $score) {
    id
  }
  updateGrade: change_simple_column_value(board_id: $board, item_id: $item, column_id: $gradeCol, value: $grade) {
    id
  }
}`

// Update writes the score and grade of one matched item. Both column writes
// travel in a single mutation, so the pair is one logical update. The write
// is a full overwrite and therefore idempotent.
func (c *Client) Update(ctx context.Context, u model.MatchedUpdate) error {
	vars := map[string]any{
		"board":    c.boardID,
		"item":     u.ItemID,
		"scoreCol": c.cols.Score,
		"score":    strconv.FormatFloat(u.Score, 'f', -1, 64),
		"gradeCol": c.cols.Grade,
		"grade":    u.Grade,
	}

	var data json.RawMessage
	if err := c.query(ctx, updateMutation, vars, &data); err != nil {
		return errUpdate(u.ItemID, err)
	}
	return nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query posts one GraphQL document and decodes resp.data into out.
func (c *Client) query(ctx context.Context, q string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: q, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errAuth(resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msg := gr.Errors[0].Message
		if isAuthMessage(msg) {
			return fmt.Errorf("%w: %s", ErrAuth, msg)
		}
		return fmt.Errorf("graphql: %s", msg)
	}
	if out != nil {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// isAuthMessage spots credential problems that monday.com reports inside the
// GraphQL errors array rather than via HTTP status.
func isAuthMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not authenticated") ||
		strings.Contains(m, "unauthorized") ||
		strings.Contains(m, "invalid token")
}
