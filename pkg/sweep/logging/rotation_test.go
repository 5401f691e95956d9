package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestRotationConfig_SizeMB(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want int
	}{
		{name: "zero uses default", size: 0, want: 10},
		{name: "exact", size: 5 * megabyte, want: 5},
		{name: "rounds up", size: 5*megabyte + 1, want: 6},
		{name: "below one megabyte", size: 1000, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RotationConfig{MaxSize: tt.size}.sizeMB())
		})
	}
}

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")

	w, err := newFileWriter(path, RotationConfig{MaxSize: 2 * megabyte, MaxAge: 7, MaxBackups: 2, Compress: true})
	require.NoError(t, err)

	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 2, lj.MaxSize)
	assert.Equal(t, 7, lj.MaxAge)
	assert.Equal(t, 2, lj.MaxBackups)
	assert.True(t, lj.Compress)

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
