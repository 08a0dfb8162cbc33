package control

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndRoundTrip(t *testing.T) {
	input := "Package: foo\nVersion: 1.0-1\nDepends: a, b\n"
	rec, err := ParseString(input)
	require.NoError(t, err)
	require.Len(t, rec.Paragraphs, 1)

	main := rec.Main()
	v, ok := main.Get("Package")
	require.True(t, ok)
	assert.Equal(t, "foo", v)
	assert.Equal(t, []string{"Package", "Version", "Depends"}, main.Order)

	var b strings.Builder
	_, err = rec.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, input, b.String())
}

func TestParseFoldedContinuation(t *testing.T) {
	input := "Description: short summary\n long description line one\n .\n another paragraph\n"
	rec, err := ParseString(input)
	require.NoError(t, err)
	v, ok := rec.Main().Get("Description")
	require.True(t, ok)
	assert.Equal(t, "short summary\nlong description line one\n\nanother paragraph", v)
}

func TestSetPreservesOrderOnOverwrite(t *testing.T) {
	p := NewParagraph()
	p.Set("A", "1")
	p.Set("B", "2")
	p.Set("A", "3")
	assert.Equal(t, []string{"A", "B"}, p.Order)
	v, _ := p.Get("A")
	assert.Equal(t, "3", v)
}

func TestDeleteRemovesFromOrder(t *testing.T) {
	p := NewParagraph()
	p.Set("A", "1")
	p.Set("B", "2")
	p.Delete("A")
	assert.Equal(t, []string{"B"}, p.Order)
	_, ok := p.Get("A")
	assert.False(t, ok)
}

func TestEmptyRecord(t *testing.T) {
	rec := Empty()
	require.Len(t, rec.Paragraphs, 1)
	assert.Empty(t, rec.Main().Order)
}
