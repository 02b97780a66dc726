package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/sheetstore/ingest"
	"github.com/jacentio/sheetstore/store"
	"github.com/jacentio/sheetstore/transform"
)

type fakeLoader struct {
	err    error
	gotURL string
	calls  int
}

func (f *fakeLoader) Load(_ context.Context, url string) error {
	f.calls++
	f.gotURL = url
	return f.err
}

func (f *fakeLoader) Status() store.Status {
	return store.Status{LoadedAt: time.Unix(1700000000, 0)}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scheduledEvent() events.CloudWatchEvent {
	return events.CloudWatchEvent{
		ID:         "evt-1",
		Source:     "aws.events",
		DetailType: "Scheduled Event",
		Time:       time.Now(),
	}
}

func TestNewHandler_DefaultLogger(t *testing.T) {
	h := NewHandler(&fakeLoader{}, "", nil)
	if h.logger == nil {
		t.Error("expected default logger")
	}
}

func TestHandleScheduledRefresh_Success(t *testing.T) {
	l := &fakeLoader{}
	h := NewHandler(l, "https://api.example.com/sheet", quietLogger())

	if err := h.HandleScheduledRefresh(context.Background(), scheduledEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.calls != 1 {
		t.Errorf("expected 1 load, got %d", l.calls)
	}
	if l.gotURL != "https://api.example.com/sheet" {
		t.Errorf("unexpected url %q", l.gotURL)
	}
}

func TestHandleScheduledRefresh_Errors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"transport", &ingest.TransportError{URL: "u", StatusCode: 503}, true},
		{"cancelled", context.Canceled, true},
		{"invalid payload", &transform.ValidationError{Field: "sheet.config", Reason: "missing"}, false},
		{"superseded", store.ErrSuperseded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeLoader{err: tt.err}, "", quietLogger())
			err := h.HandleScheduledRefresh(context.Background(), scheduledEvent())

			if tt.wantRetry {
				if !errors.Is(err, tt.err) {
					t.Errorf("expected %v to be returned, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected error to be swallowed, got %v", err)
			}
		})
	}
}
