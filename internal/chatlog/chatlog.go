package chatlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Who wrote a logged message.
const (
	FromUser = "User"
	FromAI   = "AI"
)

var header = []string{"Date Time", "User Id", "User/AI", "Message"}

// Logger appends chat activity to one CSV file per day. Users are identified
// by their client-supplied key; appends are serialized so interleaved turns
// from different users do not tear rows.
type Logger struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Logger {
	return &Logger{dir: dir}
}

// Record appends one message to the log file for at's date, writing the
// header row when the file is new.
func (l *Logger) Record(userKey string, at time.Time, from, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	path := l.PathFor(at.Format("2006-01-02"))
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	row := []string{at.Format("2006-01-02 15:04:05 PM"), userKey, from, message}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// PathFor returns the log file path for an ISO date.
func (l *Logger) PathFor(date string) string {
	return filepath.Join(l.dir, "user-chat-logs-"+date+".csv")
}

// Exists reports whether a log file exists for the ISO date.
func (l *Logger) Exists(date string) bool {
	_, err := os.Stat(l.PathFor(date))
	return err == nil
}
