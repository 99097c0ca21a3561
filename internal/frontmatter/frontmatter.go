// Package frontmatter reads and writes the YAML header of Markdown pages.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrUnterminated is returned when a document opens a front matter block but
// never closes it.
var ErrUnterminated = errors.New("front matter opened but not closed")

// Document is a parsed Markdown page.
type Document struct {
	// Metadata holds the header fields with lower-cased top-level keys.
	Metadata map[string]any
	Body     []byte
	// HasHeader reports whether the source started with a front matter block.
	HasHeader bool
}

// Parse splits data into header and body and decodes the header.
//
// Documents without a header are returned with empty metadata and the whole
// input as body. Both \n and \r\n line endings are accepted.
func Parse(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	header, body, ok, err := split(data)
	if err != nil {
		return Document{}, err
	}
	if !ok {
		return Document{Metadata: map[string]any{}, Body: data}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(header, &raw); err != nil {
		return Document{}, fmt.Errorf("decode front matter: %w", err)
	}

	meta := make(map[string]any, len(raw))
	for k, v := range raw {
		meta[strings.ToLower(k)] = v
	}
	return Document{Metadata: meta, Body: body, HasHeader: true}, nil
}

func split(data []byte) (header, body []byte, ok bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(data, open) {
		return nil, data, false, nil
	}
	rest := data[len(open):]

	if bytes.HasPrefix(rest, open) {
		return nil, rest[len(open):], true, nil
	}

	closing := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the last line without a newline.
		if bytes.HasSuffix(rest, []byte(nl+delimiter)) {
			return rest[:len(rest)-len(delimiter)], nil, true, nil
		}
		return nil, nil, false, ErrUnterminated
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
}

// Render writes meta as a front matter block followed by body. Keys are
// emitted in sorted order so the output is stable. An empty meta yields the
// body alone.
func Render(meta map[string]any, body []byte) ([]byte, error) {
	if len(meta) == 0 {
		return body, nil
	}

	// yaml.v3 sorts map keys when encoding a map[string]any.
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString(delimiter + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
