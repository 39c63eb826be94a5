// Package submit receives validated order submissions and makes them
// observable.
package submit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/orderform"
)

// Handler receives a narrowed submission exactly once per successful submit.
type Handler interface {
	Handle(ctx context.Context, s orderform.Submission) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, s orderform.Submission) error

func (f HandlerFunc) Handle(ctx context.Context, s orderform.Submission) error { return f(ctx, s) }

// Record is what the Recorder writes for every submission.
type Record struct {
	ID          string               `json:"id" yaml:"id"`
	SubmittedAt time.Time            `json:"submittedAt" yaml:"submittedAt"`
	Order       orderform.Submission `json:"order" yaml:"order"`
}

// Recorder logs submissions and optionally writes them to an io.Writer as JSON
// lines or YAML documents. Like the form it serves, it is used from a single
// goroutine.
type Recorder struct {
	logger *zap.Logger
	out    io.Writer
	format orderform.Format
	now    func() time.Time
	newID  func() string
	last   *Record
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithOutput writes every record to w in format f.
func WithOutput(w io.Writer, f orderform.Format) Option {
	return func(r *Recorder) {
		r.out = w
		r.format = f
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator overrides the submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(r *Recorder) { r.newID = fn }
}

// NewRecorder returns a Recorder logging through logger.
func NewRecorder(logger *zap.Logger, opts ...Option) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Recorder{
		logger: logger,
		format: orderform.FormatJSON,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle stamps the submission with an id and records it.
func (r *Recorder) Handle(ctx context.Context, s orderform.Submission) error {
	if s == nil {
		return fmt.Errorf("submit: nil submission")
	}
	rec := Record{ID: r.newID(), SubmittedAt: r.now().UTC(), Order: s}

	r.logger.Info("order submitted",
		zap.String("submission_id", rec.ID),
		zap.String("send_type", s.SendType().String()),
		zap.Any("payload", orderform.Fields(s)),
	)

	r.last = &rec
	if r.out == nil {
		return nil
	}
	if err := r.write(rec); err != nil {
		r.logger.Error("[Recorder.Handle] write record failed", zap.String("submission_id", rec.ID), zap.Error(err))
		return fmt.Errorf("submit: write record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *Recorder) write(rec Record) error {
	switch r.format {
	case orderform.FormatYAML:
		if _, err := io.WriteString(r.out, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	default:
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = r.out.Write(append(b, '\n'))
		return err
	}
}

// Last returns the most recent record, if any.
func (r *Recorder) Last() (Record, bool) {
	if r.last == nil {
		return Record{}, false
	}
	return *r.last, true
}
