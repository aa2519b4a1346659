package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteEnvelopeJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEnvelope(&buf, map[string]any{"theme": "sepia", "locked": true}, "json", false)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if out.Data["theme"] != "sepia" || out.Data["locked"] != true {
		t.Fatalf("payload = %+v", out.Data)
	}
}

func TestWriteEnvelopeEDN(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEnvelope(&buf, map[string]any{"count": 3, "name": "To-Do"}, "edn", false)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:data {:count 3 :name "To-Do"}}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWriteEDNValues(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEDN(&buf, map[string]any{
		"vec":  []any{1, "two", nil, true},
		"frac": 1.5,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:frac 1.5 :vec [1 "two" nil true]}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestUnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEnvelope(&buf, "x", "yaml", false); err != nil {
		t.Fatal(err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("fallback output not JSON: %s", buf.String())
	}
}
