// Package message defines the getDefinition request/response exchanged between the
// page-side tooltip and the lookup service.
package message

import (
	"encoding/json"
	"errors"

	"github.com/at-ishikawa/deftip/internal/dictionary"
)

const ActionGetDefinition = "getDefinition"

// ErrChannelBroken is reported when the lookup service cannot be reached at all.
var ErrChannelBroken = errors.New("message channel broken")

type Request struct {
	Action string `json:"action"`
	Word   string `json:"word"`
}

// Response carries exactly one of: a definition, an explicit null definition
// (looked up, not found), or an error message.
type Response struct {
	Definition *string
	Error      string
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	return json.Marshal(struct {
		Definition *string `json:"definition"`
	}{Definition: r.Definition})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Definition *string `json:"definition"`
		Error      string  `json:"error"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	r.Definition = decoded.Definition
	r.Error = decoded.Error
	return nil
}

// NewResponse converts the outcome of a lookup into its wire form.
func NewResponse(result dictionary.Result, err error) Response {
	switch {
	case errors.Is(err, dictionary.ErrInvalidInput):
		return Response{Error: "No word provided"}
	case err != nil:
		var lookupErr *dictionary.LookupFailedError
		if errors.As(err, &lookupErr) {
			return Response{Error: lookupErr.Error()}
		}
		return Response{Error: err.Error()}
	case !result.Found:
		return Response{}
	}
	definition := result.Definition
	return Response{Definition: &definition}
}

// RemoteError is an error message returned by the lookup service.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Result converts a wire response for word back into a lookup outcome.
func (r Response) Result(word string) (dictionary.Result, error) {
	if r.Error != "" {
		return dictionary.Result{}, &RemoteError{Message: r.Error}
	}
	if r.Definition == nil || *r.Definition == "" {
		return dictionary.Result{Word: word}, nil
	}
	return dictionary.Result{
		Word:       word,
		Definition: *r.Definition,
		Found:      true,
	}, nil
}
