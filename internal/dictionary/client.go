package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"resty.dev/v3"
)

//go:generate mockgen -source=client.go -destination=../mocks/dictionary/mock_client.go -package=mock_dictionary

// Client fetches the dictionary entries of a word.
type Client interface {
	FetchEntries(ctx context.Context, word string) ([]Entry, error)
}

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout = 10 * time.Second
)

// FreeDictionaryClient calls the Free Dictionary API.
type FreeDictionaryClient struct {
	httpClient *resty.Client
}

var _ Client = (*FreeDictionaryClient)(nil)

func NewFreeDictionaryClient(baseURL string, timeout time.Duration) *FreeDictionaryClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &FreeDictionaryClient{
		httpClient: client,
	}
}

func (c *FreeDictionaryClient) Close() error {
	return c.httpClient.Close()
}

func (c *FreeDictionaryClient) FetchEntries(ctx context.Context, word string) ([]Entry, error) {
	slog.Default().Debug("fetching definition", slog.String("word", word))

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/{word}")
	if err != nil {
		return nil, &LookupFailedError{
			Word: word,
			Err:  fmt.Errorf("httpClient.Get > %w", err),
		}
	}

	slog.Default().Debug("dictionary response status",
		slog.String("word", word),
		slog.Int("status", response.StatusCode()),
	)
	if !response.IsSuccess() {
		return nil, &LookupFailedError{
			Word:       word,
			StatusCode: response.StatusCode(),
			Status:     http.StatusText(response.StatusCode()),
			Err:        fmt.Errorf("status code: %d, body: %s", response.StatusCode(), response.String()),
		}
	}

	entries, err := ParseEntries([]byte(response.String()))
	if err != nil {
		return nil, &LookupFailedError{
			Word: word,
			Err:  fmt.Errorf("ParseEntries > %w", err),
		}
	}
	return entries, nil
}
