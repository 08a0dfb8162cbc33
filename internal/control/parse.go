package control

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a full control file (one or more blank-line-separated
// paragraphs) into a Record, in lenient mode: unknown fields are kept
// verbatim and field order is preserved, matching what
// PutControlChunk action both require ("preserving original field order and
// unknown fields", "parses the supplied blob in a lenient mode").
func Parse(r io.Reader) (*Record, error) {
	reader := bufio.NewReader(r)
	var record Record
	para := NewParagraph()
	sawAnyField := false

	var pendingKey string
	var pendingValue strings.Builder
	flush := func() {
		if pendingKey != "" {
			para.Set(pendingKey, pendingValue.String())
			pendingKey = ""
			pendingValue.Reset()
		}
	}

	for {
		line, err := reader.ReadString('\n')
		atEOF := err == io.EOF
		if err != nil && !atEOF {
			return nil, fmt.Errorf("reading control data: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			flush()
			if sawAnyField {
				record.Paragraphs = append(record.Paragraphs, para)
				para = NewParagraph()
				sawAnyField = false
			}

		case line[0] == ' ' || line[0] == '\t':
			// continuation line: folded onto the previous field's value
			cont := strings.TrimPrefix(line, " ")
			if cont == "." {
				cont = ""
			}
			pendingValue.WriteByte('\n')
			pendingValue.WriteString(cont)

		default:
			flush()
			idx := strings.IndexByte(line, ':')
			if idx < 0 {
				return nil, fmt.Errorf("malformed control line (no ':'): %q", line)
			}
			pendingKey = strings.TrimSpace(line[:idx])
			pendingValue.WriteString(strings.TrimPrefix(line[idx+1:], " "))
			sawAnyField = true
		}

		if atEOF {
			break
		}
	}

	flush()
	if sawAnyField {
		record.Paragraphs = append(record.Paragraphs, para)
	}
	if len(record.Paragraphs) == 0 {
		record.Paragraphs = append(record.Paragraphs, NewParagraph())
	}

	return &record, nil
}

// ParseString is a convenience wrapper over Parse for callers that already
// have the control data in memory (e.g. PutControlChunk).
func ParseString(s string) (*Record, error) {
	return Parse(strings.NewReader(s))
}
