package dictionary

import (
	"encoding/json"
	"fmt"
)

// Entry is one word entry of a Free Dictionary API response.
// https://dictionaryapi.dev/
type Entry struct {
	Word     string    `json:"word" yaml:"word"`
	Phonetic string    `json:"phonetic,omitempty" yaml:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings" yaml:"meanings"`
}

// Meaning groups the definitions that share a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech" yaml:"part_of_speech"`
	Definitions  []Definition `json:"definitions" yaml:"definitions"`
}

// UnmarshalJSON keeps the parts of an entry that decode and drops malformed meanings.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word     json.RawMessage `json:"word"`
		Phonetic json.RawMessage `json:"phonetic"`
		Meanings json.RawMessage `json:"meanings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry{
		Word:     decodeOrZero[string](raw.Word),
		Phonetic: decodeOrZero[string](raw.Phonetic),
		Meanings: decodeList[Meaning](raw.Meanings),
	}
	return nil
}

// UnmarshalJSON treats definitions that are not a list as no definitions.
func (m *Meaning) UnmarshalJSON(data []byte) error {
	var raw struct {
		PartOfSpeech json.RawMessage `json:"partOfSpeech"`
		Definitions  json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Meaning{
		PartOfSpeech: decodeOrZero[string](raw.PartOfSpeech),
		Definitions:  decodeList[Definition](raw.Definitions),
	}
	return nil
}

type Definition struct {
	Definition string `json:"definition" yaml:"definition"`
	Example    string `json:"example,omitempty" yaml:"example,omitempty"`
}

// Result is the outcome of a successful lookup.
// Found is false when the dictionary answered but had no usable definition.
type Result struct {
	Word       string `json:"word" yaml:"word"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Found      bool   `json:"found" yaml:"found"`
	Cached     bool   `json:"cached" yaml:"cached"`
}

// ParseEntries decodes a response body into entries.
// A body that is valid JSON but not a list yields no entries, and list elements
// that are not entry objects are kept as empty entries so that positions are preserved.
func ParseEntries(body []byte) ([]Entry, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if _, ok := raw.([]any); !ok {
		return nil, nil
	}

	return decodeList[Entry](body), nil
}

func decodeOrZero[T any](data json.RawMessage) T {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// decodeList decodes a JSON list element by element. Elements that do not decode
// become zero values so positions are preserved; anything but a list yields nil.
func decodeList[T any](data json.RawMessage) []T {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil || elements == nil {
		return nil
	}
	list := make([]T, 0, len(elements))
	for _, element := range elements {
		list = append(list, decodeOrZero[T](element))
	}
	return list
}

// ExtractDefinition returns the first definition of the first meaning that has any,
// looking only at the first entry. An empty definition text counts as not found.
func ExtractDefinition(entries []Entry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	for _, meaning := range entries[0].Meanings {
		if len(meaning.Definitions) > 0 {
			text := meaning.Definitions[0].Definition
			return text, text != ""
		}
	}
	return "", false
}
