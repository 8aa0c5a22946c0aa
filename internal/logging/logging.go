package logging

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
	loc           = time.UTC
)

// SetOutput redirects structured logs, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetLocation sets the timezone used for the ts field.
func SetLocation(l *time.Location) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	loc = l
}

// Location returns the timezone used for the ts field.
func Location() *time.Location {
	mu.Lock()
	defer mu.Unlock()
	return loc
}

// JSON writes one JSON object per line. ts is always set; level defaults to
// "error" when status is "error" and "info" otherwise.
func JSON(data map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	b = append(b, '\n')
	_, _ = out.Write(b)
}

// Info logs msg with extra fields.
func Info(msg string, fields map[string]any) {
	entry := map[string]any{"level": "info", "msg": msg}
	for k, v := range fields {
		entry[k] = v
	}
	JSON(entry)
}

// Error logs msg with err and extra fields.
func Error(msg string, err error, fields map[string]any) {
	entry := map[string]any{"level": "error", "msg": msg}
	if err != nil {
		entry["error"] = err.Error()
	}
	for k, v := range fields {
		entry[k] = v
	}
	JSON(entry)
}
