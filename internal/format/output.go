package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Envelope wraps command output so scripts can rely on a stable top-level
// shape.
type Envelope struct {
	Data any `json:"data"`
}

// WriteEnvelope writes the wrapped payload in the requested output format
// ("json" or "edn"); anything else falls back to JSON.
func WriteEnvelope(w io.Writer, data any, outputFormat string, pretty bool) error {
	if strings.EqualFold(strings.TrimSpace(outputFormat), "edn") {
		return WriteEDN(w, Envelope{Data: data}, pretty)
	}
	return WriteJSON(w, Envelope{Data: data}, pretty)
}
