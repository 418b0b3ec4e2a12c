package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-atlas/pkg/interfaces"
)

type fieldsRecorder struct {
	fields []map[string]any
	infos  []string
	errors []string
}

func (r *fieldsRecorder) Trace(string, ...any)                          {}
func (r *fieldsRecorder) Debug(string, ...any)                          {}
func (r *fieldsRecorder) Info(msg string, _ ...any)                     { r.infos = append(r.infos, msg) }
func (r *fieldsRecorder) Warn(string, ...any)                           {}
func (r *fieldsRecorder) Error(msg string, _ ...any)                    { r.errors = append(r.errors, msg) }
func (r *fieldsRecorder) Fatal(string, ...any)                          {}
func (r *fieldsRecorder) WithContext(context.Context) interfaces.Logger { return r }

func (r *fieldsRecorder) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func TestDefaultTelemetryAttachesFields(t *testing.T) {
	rec := &fieldsRecorder{}
	telemetry := DefaultTelemetry[testMessage](rec)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Fields:   map[string]any{"directory": "content"},
		Duration: time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})
	if len(rec.fields) != 1 || rec.fields[0]["directory"] != "content" {
		t.Fatalf("expected fields to be attached, got %#v", rec.fields)
	}
	if len(rec.infos) != 1 || rec.infos[0] != "command.execute.success" {
		t.Fatalf("expected success log, got %#v", rec.infos)
	}

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Status: TelemetryStatusFailed,
		Error:  errors.New("boom"),
	})
	if len(rec.fields) != 1 {
		t.Fatalf("expected no fields call without fields, got %d", len(rec.fields))
	}
	if len(rec.errors) != 1 || rec.errors[0] != "command.execute.failed" {
		t.Fatalf("expected failure log, got %#v", rec.errors)
	}
}
