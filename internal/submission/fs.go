package submission

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// FSSink stores files in a local directory. It mirrors the GitHub status
// codes: 201 for a new file, 200 for a replaced one.
type FSSink struct {
	Dir string
}

// NewFSSink creates a sink writing below dir.
func NewFSSink(dir string) *FSSink {
	return &FSSink{Dir: dir}
}

// Put writes data to Dir/name. The commit message is ignored.
func (s *FSSink) Put(ctx context.Context, name string, data []byte, _ string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if name != filepath.Base(name) {
		return http.StatusBadRequest, &SinkError{Path: name, StatusCode: http.StatusBadRequest, Body: "name must not contain a directory"}
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("create submission dir: %w", err)
	}

	target := filepath.Join(s.Dir, name)
	status := http.StatusCreated
	if _, err := os.Stat(target); err == nil {
		status = http.StatusOK
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("stat %s: %w", target, err)
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", target, err)
	}
	return status, nil
}
