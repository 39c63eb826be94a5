package submit_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/reoring/orderform"
	"github.com/reoring/orderform/submit"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRecorder(t *testing.T, opts ...submit.Option) (*submit.Recorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	opts = append([]submit.Option{
		submit.WithClock(func() time.Time { return fixedNow }),
		submit.WithIDGenerator(func() string { return "sub-1" }),
	}, opts...)
	return submit.NewRecorder(zap.New(core), opts...), logs
}

func TestRecorder_LogsPayload(t *testing.T) {
	r, logs := newRecorder(t)
	sub := orderform.PhoneOrder{Name: "A", Address: "B", PhoneNumbers: []string{"5551234567"}}

	require.NoError(t, r.Handle(context.Background(), sub))

	entries := logs.FilterMessage("order submitted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "sub-1", fields["submission_id"])
	assert.Equal(t, "phone", fields["send_type"])

	rec, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, sub, rec.Order)
	assert.Equal(t, fixedNow, rec.SubmittedAt)
}

func TestRecorder_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newRecorder(t, submit.WithOutput(&buf, orderform.FormatJSON))

	require.NoError(t, r.Handle(context.Background(), orderform.NoneOrder{Name: "A", Address: "B"}))
	require.NoError(t, r.Handle(context.Background(), orderform.EmailOrder{Name: "A", Address: "B", Email: "a@example.com"}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var got struct {
		ID    string         `json:"id"`
		Order map[string]any `json:"order"`
	}
	require.NoError(t, json.Unmarshal(lines[1], &got))
	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, map[string]any{"name": "A", "address": "B", "sendType": "email", "email": "a@example.com"}, got.Order)
}

func TestRecorder_WritesYAMLDocuments(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newRecorder(t, submit.WithOutput(&buf, orderform.FormatYAML))

	require.NoError(t, r.Handle(context.Background(), orderform.PhoneOrder{Name: "A", Address: "B", PhoneNumbers: []string{"5551234567"}}))

	dec := yaml.NewDecoder(&buf)
	var doc struct {
		ID    string         `yaml:"id"`
		Order map[string]any `yaml:"order"`
	}
	require.NoError(t, dec.Decode(&doc))
	assert.Equal(t, "sub-1", doc.ID)
	assert.Equal(t, []any{"5551234567"}, doc.Order["phoneNumbers"])
	assert.NotContains(t, doc.Order, "email")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorder_WriteErrorIsReturned(t *testing.T) {
	r, _ := newRecorder(t, submit.WithOutput(failingWriter{}, orderform.FormatJSON))
	err := r.Handle(context.Background(), orderform.NoneOrder{Name: "A", Address: "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRecorder_DefaultIDsAreUnique(t *testing.T) {
	r := submit.NewRecorder(nil)
	require.NoError(t, r.Handle(context.Background(), orderform.NoneOrder{Name: "A", Address: "B"}))
	first, _ := r.Last()
	require.NoError(t, r.Handle(context.Background(), orderform.NoneOrder{Name: "A", Address: "B"}))
	second, _ := r.Last()
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, first.ID, 36)
}

func TestHandlerFunc(t *testing.T) {
	var got orderform.Submission
	h := submit.HandlerFunc(func(_ context.Context, s orderform.Submission) error {
		got = s
		return nil
	})
	require.NoError(t, h.Handle(context.Background(), orderform.NoneOrder{Name: "A"}))
	assert.Equal(t, orderform.NoneOrder{Name: "A"}, got)
}
