// Package control implements an ordered, multi-paragraph Debian control-file
// model: Field: value blocks, separated by blank lines, preserving field
// insertion order and unknown fields through a load/mutate/save cycle.
package control

import (
	"fmt"
	"io"
	"strings"
)

// Paragraph is one RFC2822-like block of "Field: value" lines. It keeps a
// Values map alongside an Order slice so re-serialization reproduces the
// original field order rather than Go's randomized map iteration order.
type Paragraph struct {
	Values map[string]string
	Order  []string
}

// NewParagraph returns an empty paragraph ready for Set.
func NewParagraph() *Paragraph {
	return &Paragraph{Values: make(map[string]string)}
}

// Get returns a field's value and whether it is present.
func (p *Paragraph) Get(key string) (string, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// Set inserts or overwrites a field. A field set for the first time is
// appended to Order; an existing field keeps its original position.
func (p *Paragraph) Set(key, value string) {
	if p.Values == nil {
		p.Values = make(map[string]string)
	}
	if _, found := p.Values[key]; !found {
		p.Order = append(p.Order, key)
	}
	p.Values[key] = value
}

// Delete removes a field entirely, including from Order.
func (p *Paragraph) Delete(key string) {
	if _, found := p.Values[key]; !found {
		return
	}
	delete(p.Values, key)
	for i, k := range p.Order {
		if k == key {
			p.Order = append(p.Order[:i], p.Order[i+1:]...)
			break
		}
	}
}

// WriteTo serializes the paragraph in field-insertion order, folding
// embedded newlines the way dpkg's control files represent multi-line
// values (continuation lines indented by one space; a line that would
// otherwise be empty is rendered as a lone ".").
func (p *Paragraph) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, key := range p.Order {
		value := p.Values[key]
		value = strings.ReplaceAll(value, "\n", "\n ")
		value = strings.ReplaceAll(value, "\n \n", "\n .\n")
		value = strings.TrimRight(value, "\n ")

		n, err := fmt.Fprintf(w, "%s: %s\n", key, value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *Paragraph) String() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	return b.String()
}

// Record is the in-memory multi-paragraph control record the executor loads
// a .deb's DEBIAN/control into, mutates field by field, and serializes back.
// A .deb's own control file always has exactly one paragraph in practice,
// but the record keeps the general deb822 shape rather than special-casing
// single-paragraph files.
type Record struct {
	Paragraphs []*Paragraph
}

// Empty returns a record with a single empty paragraph — what
// DropControlData installs.
func Empty() *Record {
	return &Record{Paragraphs: []*Paragraph{NewParagraph()}}
}

// Main returns the record's first paragraph, creating one if the record is
// currently empty. A freshly unpacked .deb's control file is always a
// single paragraph, so this is the paragraph field patches apply to.
func (r *Record) Main() *Paragraph {
	if len(r.Paragraphs) == 0 {
		r.Paragraphs = append(r.Paragraphs, NewParagraph())
	}
	return r.Paragraphs[0]
}

// WriteTo serializes every paragraph, separated by a blank line.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, p := range r.Paragraphs {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := p.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
