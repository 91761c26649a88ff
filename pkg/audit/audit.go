// Package audit implements the audit collaborator: a fire-and-forget
// recorder invoked once per successful mutating ledger operation with that
// operation's canonical name.
package audit

import (
	"fmt"
	"os"
	"time"

	"bank-ledger/pkg/logging"

	"go.uber.org/zap"
)

// Recorder records the name of a mutating operation with a timestamp.
// Recording is independent of the operation's success semantics: a failed
// record must never affect already-applied ledger state.
type Recorder interface {
	LogAction(name string) error
}

// FileRecorder appends one "action,timestamp" line per action to a file.
type FileRecorder struct {
	path   string
	logger *logging.Logger
	now    func() time.Time
}

// NewFileRecorder creates a recorder appending to the file at path.
// The file is created on first write.
func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{
		path:   path,
		logger: logging.Global().Named("audit"),
		now:    time.Now,
	}
}

// LogAction appends the action name and the current timestamp.
func (r *FileRecorder) LogAction(name string) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.logger.Error("audit append failed", zap.String("action", name), zap.Error(err))
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s,%s\n", name, r.now().Format(time.RFC3339))
	if _, err := f.WriteString(line); err != nil {
		r.logger.Error("audit write failed", zap.String("action", name), zap.Error(err))
		return err
	}
	r.logger.Debug("action logged", zap.String("action", name))
	return nil
}

// NopRecorder discards all actions.
type NopRecorder struct{}

// LogAction does nothing.
func (NopRecorder) LogAction(name string) error {
	return nil
}
