package channel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/message"
	"github.com/at-ishikawa/deftip/internal/server"
)

// newDictionaryServer fakes the Free Dictionary API and counts the calls it receives.
func newDictionaryServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/run":
			_, _ = w.Write([]byte(`[{"word":"run","meanings":[
				{"definitions":[]},
				{"definitions":[{"definition":"to move swiftly"}]}
			]}]`))
		case "/xyz":
			_, _ = w.Write([]byte(`[{"word":"xyz","meanings":[]}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Lookup(t *testing.T) {
	var calls atomic.Int32
	dictionaryServer := newDictionaryServer(t, &calls)

	dictionaryClient := dictionary.NewFreeDictionaryClient(dictionaryServer.URL, time.Second)
	defer func() {
		_ = dictionaryClient.Close()
	}()
	cache := dictionary.NewCache()
	service := dictionary.NewService(cache, dictionaryClient)

	lookupServer := httptest.NewServer(server.NewHandler(service, []string{"*"}))
	defer lookupServer.Close()

	client := NewClient(lookupServer.Client(), lookupServer.URL)
	ctx := context.Background()

	t.Run("definition is fetched and cached", func(t *testing.T) {
		got, err := client.Lookup(ctx, "run")
		require.NoError(t, err)
		assert.Equal(t, dictionary.Result{Word: "run", Definition: "to move swiftly", Found: true}, got)

		entry, ok := cache.Get("run")
		require.True(t, ok)
		assert.Equal(t, "to move swiftly", entry.Definition)
	})

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		before := calls.Load()
		got, err := client.Lookup(ctx, "Run")
		require.NoError(t, err)
		assert.Equal(t, "to move swiftly", got.Definition)
		assert.Equal(t, before, calls.Load())
	})

	t.Run("not found", func(t *testing.T) {
		got, err := client.Lookup(ctx, "xyz")
		require.NoError(t, err)
		assert.False(t, got.Found)
	})

	t.Run("upstream 404 is a remote error and leaves the cache unchanged", func(t *testing.T) {
		before := cache.Len()
		_, err := client.Lookup(ctx, "zzqx")
		var remoteErr *message.RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, "API request failed: 404 - Not Found", remoteErr.Message)
		assert.NotErrorIs(t, err, message.ErrChannelBroken)
		assert.Equal(t, before, cache.Len())
	})

	t.Run("empty word", func(t *testing.T) {
		_, err := client.Lookup(ctx, "   ")
		var remoteErr *message.RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, "No word provided", remoteErr.Message)
	})
}

func TestClient_Lookup_ChannelBroken(t *testing.T) {
	lookupServer := httptest.NewServer(http.NotFoundHandler())
	url := lookupServer.URL
	lookupServer.Close()

	client := NewClient(http.DefaultClient, url)
	_, err := client.Lookup(context.Background(), "run")
	assert.ErrorIs(t, err, message.ErrChannelBroken)
}

func TestClient_Lookup_ConnectErrors(t *testing.T) {
	tests := []struct {
		name            string
		code            connect.Code
		wantBroken      bool
		wantRemoteError string
	}{
		{
			name:            "rejected request is a remote error",
			code:            connect.CodeInvalidArgument,
			wantRemoteError: `unsupported action: "getTranslation"`,
		},
		{
			name:       "unavailable service breaks the channel",
			code:       connect.CodeUnavailable,
			wantBroken: true,
		},
		{
			name:       "unknown failure breaks the channel",
			code:       connect.CodeUnknown,
			wantBroken: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.Handle(server.GetDefinitionProcedure, connect.NewUnaryHandler(
				server.GetDefinitionProcedure,
				func(ctx context.Context, req *connect.Request[message.Request]) (*connect.Response[message.Response], error) {
					return nil, connect.NewError(tt.code, errors.New(`unsupported action: "getTranslation"`))
				},
				connect.WithCodec(server.JSONCodec{}),
			))
			lookupServer := httptest.NewServer(mux)
			defer lookupServer.Close()

			client := NewClient(lookupServer.Client(), lookupServer.URL)
			_, err := client.Lookup(context.Background(), "run")
			require.Error(t, err)

			if tt.wantBroken {
				assert.ErrorIs(t, err, message.ErrChannelBroken)
				return
			}
			assert.NotErrorIs(t, err, message.ErrChannelBroken)
			var remoteErr *message.RemoteError
			require.True(t, errors.As(err, &remoteErr))
			assert.Equal(t, tt.wantRemoteError, remoteErr.Message)
		})
	}
}

func TestClient_Lookup_MissingEndpointBreaksChannel(t *testing.T) {
	lookupServer := httptest.NewServer(http.NotFoundHandler())
	defer lookupServer.Close()

	client := NewClient(lookupServer.Client(), lookupServer.URL)
	_, err := client.Lookup(context.Background(), "run")
	assert.ErrorIs(t, err, message.ErrChannelBroken)
}
