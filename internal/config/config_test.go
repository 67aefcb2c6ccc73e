package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Dictionary: DictionaryConfig{
			BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Expiry:        24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Tooltip: TooltipConfig{
			AutoHide:  5 * time.Second,
			ServerURL: "http://localhost:8080",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
  cors:
    allowed_origins:
      - chrome-extension://abcdefghijklmnop
dictionary:
  base_url: http://localhost:9999/entries/en
  timeout: 3s
cache:
  expiry: 12h
  sweep_interval: 30m
tooltip:
  auto_hide: 8s
  server_url: http://localhost:9090
`,
			want: func() *Config {
				return &Config{
					Server: ServerConfig{
						Port: 9090,
						CORS: CORSConfig{AllowedOrigins: []string{"chrome-extension://abcdefghijklmnop"}},
					},
					Dictionary: DictionaryConfig{
						BaseURL: "http://localhost:9999/entries/en",
						Timeout: 3 * time.Second,
					},
					Cache: CacheConfig{
						Expiry:        12 * time.Hour,
						SweepInterval: 30 * time.Minute,
					},
					Tooltip: TooltipConfig{
						AutoHide:  8 * time.Second,
						ServerURL: "http://localhost:9090",
					},
				}
			},
		},
		{
			name: "partial config with missing fields uses defaults",
			configContent: `cache:
  expiry: 1h
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Cache.Expiry = time.Hour
				return cfg
			},
		},
		{
			name:          "environment variables override defaults",
			configContent: "",
			env: map[string]string{
				"DEFTIP_PORT":           "7070",
				"DEFTIP_DICTIONARY_URL": "http://dictionary.internal/api",
				"DEFTIP_SERVER_URL":     "http://localhost:7070",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 7070
				cfg.Dictionary.BaseURL = "http://dictionary.internal/api"
				cfg.Tooltip.ServerURL = "http://localhost:7070"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 8080
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "invalid values are reported",
			configContent: `server:
  port: 70000
  cors:
    allowed_origins:
      - not an origin
dictionary:
  base_url: ""
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"invalid configuration",
				"port",
				`must be "*" or an origin`,
				"base_url",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "deftip.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}
