// Package server provides the Connect RPC endpoint that answers getDefinition messages.
package server

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/message"
)

const (
	DefinitionServiceName = "deftip.v1.DefinitionService"

	GetDefinitionProcedure = "/" + DefinitionServiceName + "/GetDefinition"
)

// Lookuper resolves a word to a definition.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (dictionary.Result, error)
}

// DefinitionHandler answers getDefinition messages. Lookup outcomes, failures included,
// are carried in the response body so that the page side always gets an answer.
type DefinitionHandler struct {
	lookuper Lookuper
}

func NewDefinitionHandler(lookuper Lookuper) *DefinitionHandler {
	return &DefinitionHandler{
		lookuper: lookuper,
	}
}

func (h *DefinitionHandler) GetDefinition(
	ctx context.Context,
	req *connect.Request[message.Request],
) (*connect.Response[message.Response], error) {
	if req.Msg.Action != message.ActionGetDefinition {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported action: %q", req.Msg.Action))
	}

	result, err := h.lookuper.Lookup(ctx, req.Msg.Word)
	response := message.NewResponse(result, err)
	return connect.NewResponse(&response), nil
}

// NewDefinitionServiceHandler returns the path and handler to mount on a mux.
func NewDefinitionServiceHandler(h *DefinitionHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	return GetDefinitionProcedure, connect.NewUnaryHandler(GetDefinitionProcedure, h.GetDefinition, opts...)
}
