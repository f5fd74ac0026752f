package blockstatus

import (
	"context"
	"fmt"
	"sync"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Info(msg string, args ...any)  { l.t.Log(fmt.Sprintf("[INFO] %s", msg), args) }
func (l *testLogger) Error(msg string, args ...any) { l.t.Log(fmt.Sprintf("[ERROR] %s", msg), args) }
func (l *testLogger) Warn(msg string, args ...any)  { l.t.Log(fmt.Sprintf("[WARN] %s", msg), args) }
func (l *testLogger) Debug(msg string, args ...any) { l.t.Log(fmt.Sprintf("[DEBUG] %s", msg), args) }

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	id     string
	mu     sync.Mutex
	events []cloudevents.Event
}

func newRecordingObserver(id string) *recordingObserver {
	return &recordingObserver{id: id}
}

func (o *recordingObserver) OnEvent(_ context.Context, event cloudevents.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *recordingObserver) ObserverID() string { return o.id }

func (o *recordingObserver) types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Type()
	}
	return out
}

func (o *recordingObserver) count(eventType string) int {
	n := 0
	for _, t := range o.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

func ids(raw ...string) []BlockID {
	out := make([]BlockID, len(raw))
	for i, r := range raw {
		out[i] = MustParseBlockID(r)
	}
	return out
}
