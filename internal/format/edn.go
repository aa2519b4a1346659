package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v. It targets the subset EDN shares
// with JSON (maps, vectors, strings, numbers, booleans, nil), which covers
// every CLI payload. Structs are routed through JSON first so field naming
// follows the json tags.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeEDNValue(&buf, x, 0, pretty)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

const ednIndent = 2

func writeEDNValue(buf *bytes.Buffer, v any, level int, pretty bool) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case float64:
		// Whole JSON numbers print as integers.
		if float64(int64(t)) == t {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		writeEDNVector(buf, t, level, pretty)
	case map[string]any:
		writeEDNMap(buf, t, level, pretty)
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func writeEDNVector(buf *bytes.Buffer, xs []any, level int, pretty bool) {
	buf.WriteByte('[')
	for i, x := range xs {
		ednSeparate(buf, i, level, pretty)
		writeEDNValue(buf, x, level+1, pretty)
	}
	ednClose(buf, len(xs), level, pretty)
	buf.WriteByte(']')
}

func writeEDNMap(buf *bytes.Buffer, m map[string]any, level int, pretty bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		ednSeparate(buf, i, level, pretty)
		buf.WriteByte(':')
		buf.WriteString(ednKeyword(k))
		buf.WriteByte(' ')
		writeEDNValue(buf, m[k], level+1, pretty)
	}
	ednClose(buf, len(keys), level, pretty)
	buf.WriteByte('}')
}

func ednSeparate(buf *bytes.Buffer, i, level int, pretty bool) {
	if pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", (level+1)*ednIndent))
		return
	}
	if i > 0 {
		buf.WriteByte(' ')
	}
}

func ednClose(buf *bytes.Buffer, n, level int, pretty bool) {
	if pretty && n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*ednIndent))
	}
}

// ednKeyword maps a JSON field name onto a keyword-safe symbol.
func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "-")
}
