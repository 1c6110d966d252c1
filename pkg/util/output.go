package util

import (
	"encoding/json"
	"io"
)

// ErrorResult is the JSON document printed when a command fails
type ErrorResult struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

func NewErrorResult(message string, code string) ErrorResult {
	return ErrorResult{OK: false, Message: message, ErrorCode: code}
}

// WriteJSON writes value as a single JSON document. Non-ASCII text is written as is.
func WriteJSON(w io.Writer, value any, pretty bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(value)
}
