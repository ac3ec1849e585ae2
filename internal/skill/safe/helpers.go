package safe

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrNameNotString   = errors.New("name must be a string")
	ErrInvalidFilepath = errors.New("invalid filepath")
)

// Greet returns "Hello, <name>!"
func Greet(name any) (string, error) {
	s, ok := name.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrNameNotString, name)
	}
	return fmt.Sprintf("Hello, %s!", s), nil
}

// AddNumbers returns a + b
func AddNumbers(a, b int) int {
	return a + b
}

// ReadFileSafely reads a file after rejecting empty paths and any path
// containing "..".
func ReadFileSafely(path string) (string, error) {
	if path == "" || strings.Contains(path, "..") {
		return "", ErrInvalidFilepath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
