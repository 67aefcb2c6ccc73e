package main

import (
	"fmt"
	"net/http"

	"github.com/at-ishikawa/deftip/internal/channel"
	"github.com/at-ishikawa/deftip/internal/config"
	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/tooltip"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newDefiner returns a definer that either talks to a running server or
// looks words up in-process, and a function releasing its resources.
func newDefiner(cfg *config.Config, remote bool) (tooltip.Definer, func() error) {
	if remote {
		httpClient := &http.Client{Timeout: cfg.Dictionary.Timeout}
		return channel.NewClient(httpClient, cfg.Tooltip.ServerURL), func() error { return nil }
	}

	client := dictionary.NewFreeDictionaryClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout)
	cache := dictionary.NewCache(dictionary.WithExpiry(cfg.Cache.Expiry))
	return dictionary.NewService(cache, client), client.Close
}
