// Package payload implements the application-level convention layered on
// top of the steganographic codec: a plaintext is either a tagged text
// message ("text::...") or a tagged JSON bundle of files ("bundle::{...}").
// The codec itself treats these strings as opaque.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	textTag   = "text::"
	bundleTag = "bundle::"
)

// Kind discriminates the payload variants.
type Kind int

const (
	KindText Kind = iota
	KindBundle
)

// File is one entry of a bundle. Data is base64-encoded on the wire by
// the JSON codec.
type File struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// Message is the decoded form of a payload string.
type Message struct {
	Kind  Kind
	Text  string
	Files []File
}

// MalformedError reports a payload string that carries an unknown tag or
// a bundle that fails schema validation.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed payload: %s", e.Reason)
}

// EncodeText wraps a text message in its tag.
func EncodeText(text string) string {
	return textTag + text
}

// EncodeBundle wraps a set of files in a tagged JSON bundle.
func EncodeBundle(files []File) (string, error) {
	if len(files) == 0 {
		return "", &MalformedError{Reason: "bundle has no files"}
	}
	for _, f := range files {
		if f.Name == "" {
			return "", &MalformedError{Reason: "bundle file without a name"}
		}
	}

	data, err := json.Marshal(files)
	if err != nil {
		return "", err
	}
	return bundleTag + string(data), nil
}

// Decode parses a payload string back into a Message. Anything that is
// not a well-formed tagged payload yields a MalformedError, never a
// partial result.
func Decode(s string) (*Message, error) {
	switch {
	case strings.HasPrefix(s, textTag):
		return &Message{Kind: KindText, Text: strings.TrimPrefix(s, textTag)}, nil

	case strings.HasPrefix(s, bundleTag):
		raw := strings.TrimPrefix(s, bundleTag)

		var files []File
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&files); err != nil {
			return nil, &MalformedError{Reason: fmt.Sprintf("invalid bundle JSON: %v", err)}
		}
		if len(files) == 0 {
			return nil, &MalformedError{Reason: "bundle has no files"}
		}
		for _, f := range files {
			if f.Name == "" {
				return nil, &MalformedError{Reason: "bundle file without a name"}
			}
		}
		return &Message{Kind: KindBundle, Files: files}, nil

	default:
		return nil, &MalformedError{Reason: "unknown payload tag"}
	}
}
