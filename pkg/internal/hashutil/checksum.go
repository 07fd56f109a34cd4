package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Prefix identifies the hash algorithm in persisted checksums.
const Prefix = "sha256:"

// CalculateFileChecksum calculates the SHA256 checksum of a file
func CalculateFileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%x", Prefix, hash.Sum(nil)), nil
}

// ChecksumData calculates the checksum of an in-memory byte slice, in the
// same format CalculateFileChecksum produces.
func ChecksumData(data []byte) string {
	return fmt.Sprintf("%s%x", Prefix, sha256.Sum256(data))
}
