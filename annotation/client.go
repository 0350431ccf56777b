package annotation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/relloyd/deltapipe/logger"
	"golang.org/x/net/context/ctxhttp"
)

const (
	annotationsPath  = "/items/annotations/download"
	defaultChunkSize = 500
	maxErrorBodyLen  = 512
)

// HTTPClient talks to the annotation platform REST API using a team token.
type HTTPClient struct {
	Log       logger.Logger
	BaseURL   string
	Token     string
	ChunkSize int // number of items requested per call.
	Client    *http.Client
}

// NewHTTPClient returns a client for the API found at DP_SA_API_URL or the public default.
// Requests are bounded only by the caller's context.
func NewHTTPClient(log logger.Logger, token string) *HTTPClient {
	return &HTTPClient{
		Log:       log,
		BaseURL:   helper.ReadValueFromEnvWithDefault(c.EnvVarAnnotationURL, c.AnnotationURLDefault),
		Token:     token,
		ChunkSize: defaultChunkSize,
		Client:    &http.Client{},
	}
}

type annotationsRequest struct {
	Items []string `json:"items"`
}

// GetAnnotations fetches annotations in chunks of ChunkSize items.
func (h *HTTPClient) GetAnnotations(ctx context.Context, projectID string, teamID string, itemIDs []string) ([]Annotation, error) {
	chunkSize := h.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	retval := make([]Annotation, 0, len(itemIDs))
	for start := 0; start < len(itemIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		h.Log.Debug("fetching annotations for items ", start+1, " to ", end, " of ", len(itemIDs))
		a, err := h.getChunk(ctx, projectID, teamID, itemIDs[start:end])
		if err != nil {
			return nil, err
		}
		retval = append(retval, a...)
	}
	return retval, nil
}

func (h *HTTPClient) getChunk(ctx context.Context, projectID string, teamID string, itemIDs []string) ([]Annotation, error) {
	u, err := h.annotationsURL(projectID, teamID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(annotationsRequest{Items: itemIDs})
	if err != nil {
		return nil, errors.Wrap(err, "error marshalling annotation request")
	}
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "error building annotation request")
	}
	req.Header.Set("Authorization", h.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := ctxhttp.Do(ctx, h.Client, req)
	if err != nil {
		return nil, errors.Wrap(err, "error calling annotation API")
	}
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading annotation API response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotation API returned status %v: %v", resp.StatusCode, truncate(string(b), maxErrorBodyLen))
	}
	retval := make([]Annotation, 0, len(itemIDs))
	if err = json.Unmarshal(b, &retval); err != nil {
		return nil, errors.Wrap(err, "error parsing annotation API response")
	}
	return retval, nil
}

func (h *HTTPClient) annotationsURL(projectID string, teamID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(h.BaseURL, "/") + annotationsPath)
	if err != nil {
		return "", errors.Wrapf(err, "invalid annotation API URL %q", h.BaseURL)
	}
	q := u.Query()
	q.Set("project_id", projectID)
	q.Set("team_id", teamID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
