package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"token-icon-service/internal/models"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client talks to the CoinGecko REST API. The base URL is injectable
// so tests can point it at an httptest server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchTokenList downloads the full catalog from /coins/list.
func (c *Client) FetchTokenList() (models.TokenList, error) {
	resp, err := c.http.Get(c.baseURL + "/coins/list")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coins/list status %d: %s", resp.StatusCode, upstreamError(body))
	}

	var list models.TokenList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return list, nil
}

// FetchTokenDetails downloads /coins/{id} for a single token.
func (c *Client) FetchTokenDetails(id string) (*models.TokenDetails, error) {
	resp, err := c.http.Get(c.baseURL + "/coins/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coins/%s status %d: %s", id, resp.StatusCode, upstreamError(body))
	}

	var details models.TokenDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return &details, nil
}

// FetchImage downloads raw icon bytes from an absolute URL taken
// out of TokenDetails.
func (c *Client) FetchImage(imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}

	resp, err := c.http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch status %d for %s", resp.StatusCode, imageURL)
	}

	return io.ReadAll(resp.Body)
}

func upstreamError(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &errResp)
	if errResp.Error == "" {
		return "no error detail"
	}
	return errResp.Error
}
