package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	pkg := &Package{
		DebianBinary: "2.0\n",
		ControlFiles: map[string][]byte{
			"control": []byte("Package: foo\nVersion: 1.0-1\n"),
		},
		ControlOrder: []string{"control"},
		DataFiles: map[string][]byte{
			"./usr/bin/foo": []byte("#!/bin/sh\necho hi\n"),
		},
		DataOrder: []string{"./usr/bin/foo"},
	}

	data, err := Pack(pkg)
	require.NoError(t, err)

	got, err := Unpack(data)
	require.NoError(t, err)

	assert.Equal(t, "2.0\n", got.DebianBinary)
	assert.Equal(t, pkg.ControlFiles, got.ControlFiles)
	assert.Equal(t, pkg.DataFiles, got.DataFiles)
}
