// Package codec serializes assessment values through a versioned JSON
// envelope.
//
// Every encoded value is wrapped as {"praxis_codec": 1, "kind": "...",
// "payload": ...}. The payload field names are the contract other layers
// rely on; decode is strict and rejects unknown envelope versions, kinds,
// and variant types.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the current envelope version.
const Version = 1

var (
	// ErrUnknownVersion indicates an envelope from an unsupported version.
	ErrUnknownVersion = errors.New("unknown codec version")
	// ErrUnknownKind indicates an envelope whose kind this codec cannot
	// decode.
	ErrUnknownKind = errors.New("unknown codec kind")
	// ErrUnknownVariant indicates a question or answer with an unknown
	// type tag.
	ErrUnknownVariant = errors.New("unknown variant type")
)

// Envelope kinds.
const (
	KindQuiz         = "quiz"
	KindLab          = "lab"
	KindAnswer       = "answer"
	KindAnswers      = "answers"
	KindScore        = "score"
	KindSuiteResults = "suite_results"
)

type envelope struct {
	Version int             `json:"praxis_codec"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func encode(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	data, err := json.Marshal(envelope{Version: Version, Kind: kind, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", kind, err)
	}
	return data, nil
}

func open(data []byte, kind string) (json.RawMessage, error) {
	var e envelope
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&e); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if e.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, e.Version)
	}
	if e.Kind != kind {
		return nil, fmt.Errorf("%w: %q (want %q)", ErrUnknownKind, e.Kind, kind)
	}
	return e.Payload, nil
}

// Kind peeks at an envelope's kind without decoding the payload.
func Kind(data []byte) (string, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("unmarshal envelope: %w", err)
	}
	if e.Version != Version {
		return "", fmt.Errorf("%w: %d", ErrUnknownVersion, e.Version)
	}
	return e.Kind, nil
}
