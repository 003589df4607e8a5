package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/compartments/pkg/domain"
)

// Client implements ports.ModelSink by POSTing models to a compartments server
// (or any endpoint accepting the same JSON document).
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient targets http://host:port.
func NewClient(host string, port int, token string) *Client {
	return &Client{
		BaseURL: "http://" + net.JoinHostPort(host, strconv.Itoa(port)),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit sends the model and waits for the server to accept it.
func (c *Client) Submit(ctx context.Context, model *domain.BuiltModel) error {
	body, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model %q: %w", model.Key, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.BaseURL, "/")+"/models", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
