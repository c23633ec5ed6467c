// Package iojson holds helpers for reading and writing JSON from command
// line tools.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteIndented writes obj as indented JSON followed by a newline. Marshal
// failures are reported on ew as a JSON error object.
func WriteIndented(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return writeMarshalError(ew, err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single line of JSON.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

func writeMarshalError(ew io.Writer, marshalErr error) error {
	bits, _ := json.Marshal(struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{
		Message: "failed to encode output",
		Error:   marshalErr.Error(),
	})
	_, _ = fmt.Fprintln(ew, string(bits))
	return fmt.Errorf("marshal: %w", marshalErr)
}
