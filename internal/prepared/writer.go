package prepared

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"veloviz.transitdata.no/internal/models"
)

// WriteWithExecutionMetadata writes data to path wrapped in an execution
// envelope. start marks the beginning of the producing run; pass the zero
// time to omit the duration. Prior content is fully overwritten, never
// merged.
func WriteWithExecutionMetadata[T any](path string, data T, start time.Time) error {
	info := &models.ExecutionInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		OS:        runtime.GOOS + "/" + runtime.GOARCH,
		CPUCount:  runtime.NumCPU(),
	}
	if !start.IsZero() {
		secs := int64(math.Round(time.Since(start).Seconds()))
		info.DurationSeconds = &secs
	}

	env := models.Envelope[T]{
		LastExport: info,
		Data:       data,
	}

	buf, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
