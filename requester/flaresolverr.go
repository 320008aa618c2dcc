package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FlareSolverr is a client for a FlareSolverr instance, used as a
// fallback when the plain client is served an anti-bot challenge.
type FlareSolverr struct {
	url        string
	maxTimeout int
	httpClient *http.Client
}

func NewFlareSolverr(url string, timeoutMilli int) *FlareSolverr {
	return &FlareSolverr{url: url, maxTimeout: timeoutMilli, httpClient: &http.Client{}}
}

type solverResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Solution struct {
		URL       string `json:"url"`
		Status    int    `json:"status"`
		UserAgent string `json:"userAgent"`
		Response  string `json:"response"`
	} `json:"solution"`
}

func (f *FlareSolverr) command(ctx context.Context, cmd map[string]string) (*solverResponse, error) {
	jsonBody, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/v1", f.url), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response solverResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Get fetches the url through FlareSolverr and returns the solved
// response body.
func (f *FlareSolverr) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	response, err := f.command(ctx, map[string]string{
		"cmd":        "request.get",
		"url":        url,
		"maxTimeout": fmt.Sprintf("%d", f.maxTimeout),
	})
	if err != nil {
		return nil, err
	}

	if response.Status != "ok" {
		return nil, fmt.Errorf("failed to get response: %s", response.Message)
	}

	// the solver itself may be served a challenge it cannot pass
	if strings.Contains(response.Solution.Response, "Under attack") {
		return nil, fmt.Errorf("under attack")
	}

	return io.NopCloser(bytes.NewReader([]byte(response.Solution.Response))), nil
}
