package camera

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoStreamMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp4")
	vs, err := NewVideoStream(path)
	require.Error(t, err)
	assert.Nil(t, vs)
	assert.Contains(t, err.Error(), "missing.mp4")
}
