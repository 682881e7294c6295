// Package tryon talks to a hosted IDM-VTON Gradio Space.
package tryon

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
)

const (
	defaultTimeout = 300 * time.Second
	maxEventLine   = 1 << 20
)

var ErrEmptyResult = errors.New("model returned no image")

type Config struct {
	Endpoint string
	APIName  string
	Token    string
	Timeout  time.Duration
}

// Client submits jobs through the Gradio call API: a POST returns an event id,
// and a GET on that id streams server-sent events until "complete" or "error".
type Client struct {
	endpoint string
	apiName  string
	token    string
	http     *http.Client
	logger   zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiName:  strings.Trim(cfg.APIName, "/"),
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type fileData struct {
	Path string   `json:"path"`
	Meta fileMeta `json:"meta"`
}

type fileMeta struct {
	Type string `json:"_type"`
}

type editorValue struct {
	Background fileData   `json:"background"`
	Layers     []fileData `json:"layers"`
	Composite  *fileData  `json:"composite"`
}

func remoteFile(url string) fileData {
	return fileData{Path: url, Meta: fileMeta{Type: "gradio.FileData"}}
}

// Generate runs one try-on and returns the URL of the generated image.
func (c *Client) Generate(ctx context.Context, garmentURL, personURL string, params domain.InferenceParams) (string, error) {
	eventID, err := c.submit(ctx, garmentURL, personURL, params)
	if err != nil {
		return "", err
	}
	c.logger.Info().Str("event_id", eventID).Str("model", domain.TryOnModelName).Msg("try-on job submitted")

	data, err := c.await(ctx, eventID)
	if err != nil {
		return "", err
	}
	return c.resultURL(data)
}

func (c *Client) submit(ctx context.Context, garmentURL, personURL string, p domain.InferenceParams) (string, error) {
	payload := map[string]any{
		"data": []any{
			editorValue{Background: remoteFile(personURL), Layers: []fileData{}},
			remoteFile(garmentURL),
			p.GarmentDescription,
			p.AutoMask,
			p.AutoCrop,
			p.DenoiseSteps,
			p.Seed,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("submit job: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		EventID string `json:"event_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if out.EventID == "" {
		return "", errors.New("submit job: missing event_id")
	}
	return out.EventID, nil
}

func (c *Client) await(ctx context.Context, eventID string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.callURL()+"/"+eventID, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("await job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("await job: status %d", resp.StatusCode)
	}
	return readResult(resp.Body)
}

// readResult scans an event stream for the terminal event.
func readResult(r io.Reader) (json.RawMessage, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxEventLine)

	var event string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			switch event {
			case "complete":
				return json.RawMessage(data), nil
			case "error":
				if data == "" || data == "null" {
					return nil, errors.New("model reported an error")
				}
				return nil, fmt.Errorf("model reported an error: %s", data)
			}
		case line == "":
			event = ""
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read event stream: %w", err)
	}
	return nil, errors.New("event stream ended without a result")
}

// resultURL extracts the first output, which is either a bare URL or a file
// object carrying url or path. Relative paths resolve against the endpoint.
func (c *Client) resultURL(data json.RawMessage) (string, error) {
	var outputs []json.RawMessage
	if err := json.Unmarshal(data, &outputs); err != nil {
		return "", fmt.Errorf("decode result: %w", err)
	}
	if len(outputs) == 0 || string(outputs[0]) == "null" {
		return "", ErrEmptyResult
	}

	var url string
	if err := json.Unmarshal(outputs[0], &url); err != nil {
		var file struct {
			URL  string `json:"url"`
			Path string `json:"path"`
		}
		if err := json.Unmarshal(outputs[0], &file); err != nil {
			return "", fmt.Errorf("decode result: %w", err)
		}
		url = file.URL
		if url == "" {
			url = file.Path
		}
	}

	switch {
	case url == "":
		return "", ErrEmptyResult
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url, nil
	case strings.HasPrefix(url, "/"):
		return c.endpoint + url, nil
	default:
		return c.endpoint + "/gradio_api/file=" + url, nil
	}
}

func (c *Client) callURL() string {
	return c.endpoint + "/gradio_api/call/" + c.apiName
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
