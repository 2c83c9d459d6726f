package editor

import (
	"fmt"
	"sync"
	"time"

	"voidwake/mobs/logging"
)

const statusLimit = 50

type StatusEntry struct {
	Time     time.Time        `json:"time"`
	Severity logging.Severity `json:"severity"`
	Message  string           `json:"message"`
}

// StatusLog is the session's message ring shown in the editor footer.
// Only the most recent entries are kept.
type StatusLog struct {
	mu      sync.Mutex
	entries []StatusEntry
	limit   int
}

func newStatusLog() *StatusLog {
	return &StatusLog{limit: statusLimit}
}

func (l *StatusLog) push(severity logging.Severity, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) >= l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, StatusEntry{
		Time:     time.Now(),
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *StatusLog) Info(format string, args ...any) {
	l.push(logging.SeverityInfo, format, args...)
}

func (l *StatusLog) Warn(format string, args ...any) {
	l.push(logging.SeverityWarn, format, args...)
}

func (l *StatusLog) Error(format string, args ...any) {
	l.push(logging.SeverityError, format, args...)
}

func (l *StatusLog) Entries() []StatusEntry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]StatusEntry(nil), l.entries...)
}
