package main

import "encoding/json"

// CLIError is a uniform error payload for human and JSON output, mirroring
// internal/core.CLIError's shape in the teacher repo (stable Code plus
// Message/Detail, JSON-marshalable for --json mode).
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e CLIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e CLIError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

const (
	errParseFailed    = "ERR_PARSE"
	errEvalFailed     = "ERR_EVAL"
	errInvalidVersion = "ERR_INVALID_VERSION"
	errDocstore       = "ERR_DOCSTORE"
	errInvalidConfig  = "ERR_INVALID_CONFIG"
)

func wrap(code, msg string, inner error) error {
	return CLIError{Code: code, Message: msg, Detail: inner.Error()}
}
