// Package channel is the page-side end of the getDefinition message channel.
package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/message"
	"github.com/at-ishikawa/deftip/internal/server"
)

// Client sends getDefinition messages to a running lookup service.
type Client struct {
	client *connect.Client[message.Request, message.Response]
}

func NewClient(httpClient connect.HTTPClient, baseURL string) *Client {
	return &Client{
		client: connect.NewClient[message.Request, message.Response](
			httpClient,
			strings.TrimRight(baseURL, "/")+server.GetDefinitionProcedure,
			connect.WithCodec(server.JSONCodec{}),
		),
	}
}

// Lookup asks the service for the definition of word. Failures of the channel itself
// wrap message.ErrChannelBroken; failures reported by the service, in the body or as a
// rejecting Connect code, are *message.RemoteError.
func (c *Client) Lookup(ctx context.Context, word string) (dictionary.Result, error) {
	res, err := c.client.CallUnary(ctx, connect.NewRequest(&message.Request{
		Action: message.ActionGetDefinition,
		Word:   word,
	}))
	if err != nil {
		if remoteCode(connect.CodeOf(err)) {
			var connectErr *connect.Error
			msg := err.Error()
			if errors.As(err, &connectErr) {
				msg = connectErr.Message()
			}
			return dictionary.Result{}, fmt.Errorf("client.CallUnary > %w", &message.RemoteError{Message: msg})
		}
		return dictionary.Result{}, fmt.Errorf("%w: client.CallUnary > %w", message.ErrChannelBroken, err)
	}
	return res.Msg.Result(word)
}

// remoteCode reports whether code is a rejection by a reachable service rather than a
// failure to reach it.
func remoteCode(code connect.Code) bool {
	switch code {
	case connect.CodeInvalidArgument,
		connect.CodeFailedPrecondition,
		connect.CodeOutOfRange,
		connect.CodeNotFound,
		connect.CodeAlreadyExists,
		connect.CodePermissionDenied,
		connect.CodeUnauthenticated,
		connect.CodeResourceExhausted,
		connect.CodeAborted:
		return true
	}
	return false
}
