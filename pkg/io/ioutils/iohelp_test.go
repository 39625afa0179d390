package ioutils

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	for _, name := range []string{"plain.txt", "packed.txt.gz"} {
		p := filepath.Join(t.TempDir(), name)
		w, err := CreateMaybeCompressed(p)
		require.NoError(t, err)
		_, err = io.WriteString(w, "hello")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := OpenMaybeCompressed(p)
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, "hello", string(b), name)
	}
}
