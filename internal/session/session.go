package session

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/airdb/internal/engine"
	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/ir"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Session connects one engine to an input and an output stream.
type Session struct {
	id     string
	engine *engine.Engine
	in     io.Reader
	out    io.Writer
	queue  *inbox
	clock  *Clock
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The session id is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session. Its id is a fresh UUIDv7 unless WithID is given.
func New(e *engine.Engine, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		engine: e,
		in:     in,
		out:    out,
		queue:  newInbox(),
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.Must(uuid.NewV7()).String()
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Seq returns the seq number of the last event written.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}

// Send queues an inbound event ahead of anything not yet read from the
// input. Returns false once the session has stopped accepting input.
func (s *Session) Send(in event.Inbound) bool {
	return s.queue.Enqueue(request{in: in})
}

// Run processes queued events until EndApplication is written, the input
// is exhausted, or ctx is cancelled. Must be called at most once.
//
// Only a failed write to the output or a cancelled context is an error.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session starting")
	defer s.shutdown()

	go s.read()

	for {
		req, ok := s.queue.TryDequeue()
		if ok {
			done, err := s.handle(ctx, req)
			if err != nil {
				return err
			}
			if done {
				s.logger.Info("session stopping: application ended")
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			s.logger.Info("session stopping: context cancelled", "unprocessed", s.queue.Len())
			return ctx.Err()

		case <-s.queue.Wait():
			// The signal channel is closed with the queue, so a drained
			// queue wakes us immediately.
			if s.queue.Drained() {
				s.logger.Info("session stopping: input closed")
				return nil
			}
		}
	}
}

// handle processes one request and writes its outbound events. done is
// true once EndApplication has been written.
func (s *Session) handle(ctx context.Context, req request) (done bool, err error) {
	var outs []event.Outbound
	if req.err != nil {
		s.logger.Warn("rejected input line", "line", req.line, "error", req.err)
		outs = []event.Outbound{event.Error{Message: req.err.Error()}}
	} else {
		outs = s.engine.Process(ctx, req.in)
	}

	for _, o := range outs {
		if err := s.write(o); err != nil {
			return false, err
		}
		if _, ok := o.(event.EndApplication); ok {
			done = true
		}
	}
	return done, nil
}

// write stamps o with the next seq and writes it as one line.
func (s *Session) write(o event.Outbound) error {
	fields, err := event.Fields(o)
	if err != nil {
		return err
	}
	fields["type"] = ir.IRString(o.Kind())

	line, err := ir.MarshalCanonical(ir.IRObject{
		"seq":   ir.IRInt(s.clock.Next()),
		"event": fields,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", o.Kind(), err)
	}

	line = append(line, '\n')
	if _, err := s.out.Write(line); err != nil {
		return fmt.Errorf("write %s: %w", o.Kind(), err)
	}
	return nil
}

// read decodes input lines onto the queue until the input ends or the
// queue stops accepting. Blank lines are skipped.
func (s *Session) read() {
	defer s.queue.Close()

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		in, err := event.Decode(data)
		if !s.queue.Enqueue(request{line: line, in: in, err: err}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		s.queue.Enqueue(request{line: line + 1, err: fmt.Errorf("read input: %w", err)})
	}
}

// shutdown stops the reader from queueing more work and closes the
// database.
func (s *Session) shutdown() {
	s.queue.Close()
	if err := s.engine.Close(); err != nil {
		s.logger.Warn("close database failed", "error", err)
	}
	s.logger.Info("session stopped", "events", s.clock.Current())
}
