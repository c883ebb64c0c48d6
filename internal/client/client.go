// Package client runs one connection to a server: it registers, keeps the
// connection alive, joins a channel, and relays chat in both directions.
package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/horgh/catchat/internal/message"
	"github.com/horgh/catchat/internal/queue"
	"github.com/horgh/catchat/internal/session"
	"github.com/pkg/errors"
)

// DefaultPollInterval is how long a read waits before we look for chat to
// send.
const DefaultPollInterval = time.Second

// DefaultWriteTimeout is how long a write may take.
const DefaultWriteTimeout = 30 * time.Second

// TransportError means reading from or writing to the connection failed. The
// connection is no good any more.
type TransportError struct {
	// Op is "read" or "write".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error during %s: %s", e.Op, e.Err)
}

// Cause returns the underlying error.
func (e *TransportError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// DeliveryError means we could not hand a message on because whoever was
// receiving them went away.
type DeliveryError struct {
	Message message.Message
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("unable to deliver message: %s: %s", e.Message, e.Err)
}

// Cause returns the underlying error.
func (e *DeliveryError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *DeliveryError) Unwrap() error { return e.Err }

// IsFatal tells whether an error returned by Run means the connection failed,
// as opposed to being asked to stop.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	switch err.(type) {
	case *TransportError, *DeliveryError:
		return true
	}

	cause := errors.Cause(err)
	return cause != context.Canceled && cause != context.DeadlineExceeded
}

// Client holds what we need to run a connection.
type Client struct {
	Nick     string
	Channel  string
	RealName string

	// How long each read waits. This bounds how long chat waits before we send
	// it and how long we take to notice the context is done. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration

	// Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	// Where diagnostics go. If nil we use the standard logger.
	Log *log.Logger
}

// Run registers on conn and then processes the connection until it fails or
// ctx is done. It closes conn before returning.
//
// Every message from the server goes to inbound, in order, after we respond to
// it. Chat text from outbound goes to our channel. Text sent before we are in
// the channel goes out once we join.
//
// When Run returns, inbound is closed for sending and outbound for receiving.
func (c *Client) Run(
	ctx context.Context,
	conn Transport,
	inbound *queue.Queue[message.Message],
	outbound *queue.Queue[string],
) error {
	defer inbound.CloseSend()
	defer outbound.CloseReceive()

	s, err := session.New(session.Config{
		Nick:     c.Nick,
		Channel:  c.Channel,
		RealName: c.RealName,
	})
	if err != nil {
		_ = conn.Close()
		return err
	}

	pollInterval := c.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	writeTimeout := c.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	r := &runner{
		client:   c,
		conn:     NewConn(conn, pollInterval, writeTimeout),
		session:  s,
		inbound:  inbound,
		outbound: outbound,
	}

	defer func() {
		if err := r.conn.Close(); err != nil {
			c.logf("Problem closing connection: %s", err)
		}
	}()

	return r.run(ctx)
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// runner is the state of one Run.
type runner struct {
	client   *Client
	conn     *Conn
	session  *session.Session
	inbound  *queue.Queue[message.Message]
	outbound *queue.Queue[string]
}

func (r *runner) run(ctx context.Context) error {
	if err := r.write(r.session.Start()); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		lines, readErr := r.conn.ReadLines()

		for _, line := range lines {
			if err := r.handleLine(line); err != nil {
				return err
			}
		}

		if readErr != nil && !isTimeout(readErr) {
			return &TransportError{Op: "read", Err: readErr}
		}

		if err := r.sendChat(); err != nil {
			return err
		}
	}
}

// handleLine decodes one line, responds to it, and passes it on.
//
// We skip lines we can't decode or act on rather than giving up on the
// connection.
func (r *runner) handleLine(line string) error {
	m, err := message.Parse(line)
	if err != nil {
		r.client.logf("Skipping line: %s", err)
		return nil
	}

	replies, err := r.session.Handle(m)
	if err != nil {
		r.client.logf("Skipping message: %s", err)
		return nil
	}

	if err := r.inbound.Send(m); err != nil {
		return &DeliveryError{Message: m, Err: err}
	}

	return r.write(replies)
}

// sendChat sends whatever chat text is waiting.
func (r *runner) sendChat() error {
	for {
		text, ok := r.outbound.TryReceive()
		if !ok {
			return nil
		}

		// A message can't span lines.
		text = strings.TrimRight(text, "\r\n")
		if strings.ContainsAny(text, "\r\n\x00") {
			r.client.logf("Not sending chat containing a line break or NUL: %q",
				text)
			continue
		}

		if err := r.write(r.session.Say(text)); err != nil {
			return err
		}
	}
}

func (r *runner) write(ms []message.Message) error {
	for _, m := range ms {
		if err := r.conn.WriteMessage(m); err != nil {
			return &TransportError{Op: "write", Err: err}
		}
	}
	return nil
}
