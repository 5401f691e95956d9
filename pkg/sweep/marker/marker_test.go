package marker

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		mode  fs.FileMode
		want  Class
	}{
		{"target dir", "target", fs.ModeDir | 0o755, ArtifactDir},
		{"manifest file", "Cargo.toml", 0o644, ManifestFile},
		{"plain dir", "src", fs.ModeDir | 0o755, Plain},
		{"plain file", "main.rs", 0o644, Plain},
		{"target as file", "target", 0o644, Plain},
		{"manifest as dir", "Cargo.toml", fs.ModeDir | 0o755, Plain},
		{"hidden dir", ".git", fs.ModeDir | 0o755, SkipHidden},
		{"hidden target", ".target", fs.ModeDir | 0o755, SkipHidden},
		{"hidden symlink", ".link", fs.ModeSymlink, SkipHidden},
		{"symlink named target", "target", fs.ModeSymlink | 0o777, SkipSymlink},
		{"symlink named manifest", "Cargo.toml", fs.ModeSymlink, SkipSymlink},
		{"case differs", "cargo.toml", 0o644, Plain},
		{"device file", "target", fs.ModeDevice, Plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.entry, tt.mode))
		})
	}
}

func TestClassSkipped(t *testing.T) {
	assert.True(t, SkipHidden.Skipped())
	assert.True(t, SkipSymlink.Skipped())
	assert.False(t, Plain.Skipped())
	assert.False(t, ArtifactDir.Skipped())
	assert.True(t, ArtifactDir.Traversable())
	assert.False(t, SkipSymlink.Traversable())
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "artifact-dir", ArtifactDir.String())
	assert.Equal(t, "skip-symlink", SkipSymlink.String())
	assert.Equal(t, "unknown", Class(99).String())
}

func TestMatch(t *testing.T) {
	var m Match
	assert.False(t, m.Complete())

	m.Observe(ArtifactDir)
	m.Observe(Plain)
	m.Observe(SkipHidden)
	assert.False(t, m.Complete())

	m.Observe(ManifestFile)
	assert.True(t, m.Complete())
}
