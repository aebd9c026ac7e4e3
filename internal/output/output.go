// Package output emits the single JSON object every dashgen command
// prints to stdout: {"success": bool, ...command fields}.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// Emit writes a success envelope carrying the given fields.
func Emit(fields map[string]any) error {
	return write(os.Stdout, true, fields)
}

// Fail writes a failure envelope for err.
func Fail(err error) error {
	return write(os.Stdout, false, map[string]any{"error": err.Error()})
}

func write(w io.Writer, success bool, fields map[string]any) error {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = success

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
