// Test Type: Unit Test
// Description: Checksum calculation with minimal filesystem dependency

package hashutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getcodekit/codekit/pkg/internal/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFileChecksum(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	sum, err := hashutil.CalculateFileChecksum(path)
	require.NoError(t, err)
	// SHA256 of the empty string.
	assert.Equal(t, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", sum)
}

func TestCalculateFileChecksumMatchesData(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte("skills and rules\n")

	path := filepath.Join(tempDir, "f.md")
	require.NoError(t, os.WriteFile(path, content, 0644))

	fromFile, err := hashutil.CalculateFileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, hashutil.ChecksumData(content), fromFile)
}

func TestCalculateFileChecksumMissingFile(t *testing.T) {
	_, err := hashutil.CalculateFileChecksum(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
