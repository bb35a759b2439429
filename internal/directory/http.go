package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"keyshare/internal/domain"
)

// QueryPath is the key-query endpoint relative to the directory base URL.
const QueryPath = "/_matrix/client/v3/keys/query"

// QueryRequest is the key-query request body. An empty device list asks for
// all of a user's devices.
type QueryRequest struct {
	DeviceKeys map[domain.UserID][]domain.DeviceID `json:"device_keys"`
	Timeout    int64                               `json:"timeout,omitempty"`
}

// HTTP queries a directory over HTTP.
type HTTP struct {
	Base  string
	HTTP  *http.Client
	Token string // optional bearer token
}

// NewHTTP returns a client for the directory at base. A nil client means
// http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client}
}

// QueryKeys fetches the device and cross-signing keys of users.
func (c *HTTP) QueryKeys(ctx context.Context, users []domain.UserID) (domain.KeyQueryResponse, error) {
	req := QueryRequest{DeviceKeys: make(map[domain.UserID][]domain.DeviceID, len(users))}
	for _, u := range users {
		req.DeviceKeys[u] = []domain.DeviceID{}
	}
	if dl, ok := ctx.Deadline(); ok {
		req.Timeout = time.Until(dl).Milliseconds()
	}

	var out domain.KeyQueryResponse
	if err := c.post(ctx, QueryPath, req, &out); err != nil {
		return domain.KeyQueryResponse{}, err
	}
	return out, nil
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("directory %s %s: %s", http.MethodPost, u, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ domain.KeyQuerier = (*HTTP)(nil)
