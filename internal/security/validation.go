// Package security provides guards for file input and output paths.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxInputSize bounds how much of a selector source file is read.
const MaxInputSize int64 = 64 << 20

// ErrInputTooLarge is returned once a LimitedReader's budget is exhausted.
var ErrInputTooLarge = errors.New("input size limit exceeded")

// ValidateFilePath checks that a generated file name stays inside baseDir.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}
	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute output path %q not allowed", filePath)
	}
	for _, part := range strings.Split(filepath.ToSlash(filePath), "/") {
		if part == ".." {
			return fmt.Errorf("output path %q contains directory traversal", filePath)
		}
	}

	cleanBase := filepath.Clean(baseDir)
	cleanFinal := filepath.Join(cleanBase, filePath)
	if cleanFinal != cleanBase && !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("output path %q would escape %s", filePath, baseDir)
	}
	return nil
}

// LimitedReader reads from R until Remaining bytes have been consumed, then
// fails with ErrInputTooLarge instead of reporting a clean EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
	limit     int64
}

// NewLimitedReader wraps r with a budget of maxBytes.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{R: r, Remaining: maxBytes, limit: maxBytes}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Input of exactly the limit is accepted if the source is at EOF.
		var extra [1]byte
		if n, err := l.R.Read(extra[:]); n == 0 && err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w (%d bytes)", ErrInputTooLarge, l.limit)
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}
