package jsonfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// codec writes documents the way the front end diffs them: stable key order, no HTML escaping.
var codec = sonic.Config{
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

func readDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", path)
	}
	return raw, nil
}

// writeDocument writes v pretty-printed with a trailing newline. The file is
// replaced through a rename so readers never see a partial document.
func writeDocument(path string, v any) error {
	raw, err := codec.MarshalIndent(v, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(raw)
	_ = buf.WriteByte('\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "close %s", path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "chmod %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "replace %s", path)
	}
	return nil
}

func resolvePath(baseDir, location string) string {
	location = strings.TrimSpace(location)
	if filepath.IsAbs(location) || baseDir == "" {
		return filepath.Clean(location)
	}
	return filepath.Join(baseDir, location)
}

// nullableInt accepts JSON numbers, numeric strings and null.
// Anything else decodes as null rather than failing the whole document.
type nullableInt struct {
	value int
	valid bool
}

func newNullableInt(v *int) nullableInt {
	if v == nil {
		return nullableInt{}
	}
	return nullableInt{value: *v, valid: true}
}

func (n nullableInt) ptr() *int {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

func (n nullableInt) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(n.value), 10), nil
}

func (n *nullableInt) UnmarshalJSON(data []byte) error {
	*n = nullableInt{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return nil
		}
		if parsed, ok := leadingInt(text); ok {
			*n = nullableInt{value: parsed, valid: true}
		}
		return nil
	}

	var number float64
	if err := sonic.Unmarshal(trimmed, &number); err != nil {
		return nil
	}
	*n = nullableInt{value: int(number), valid: true}
	return nil
}

// leadingInt parses the optional sign and digits at the start of text.
func leadingInt(text string) (int, bool) {
	text = strings.TrimSpace(text)
	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	parsed, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func stringPtr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
