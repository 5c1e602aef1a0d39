package output

import (
	"encoding/json"
	"fmt"
	"io"

	"portscanner/scanner"
)

// WriteJSON encodes the result as indented JSON.
func WriteJSON(res *scanner.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
