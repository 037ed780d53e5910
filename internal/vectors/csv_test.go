package vectors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write([]float64{0.5, -1e-05, 3}))
	require.NoError(t, w.Write([]float64{}))
	require.NoError(t, w.Write([]float64{0.1}))
	require.NoError(t, w.Flush())

	assert.Equal(t, 3, w.Rows())
	assert.Equal(t, "0.5,-1e-05,3\n\n0.1\n", buf.String())
}
