package client

import (
	"bufio"
	"io"
	"time"

	"github.com/horgh/catchat/internal/message"
	"github.com/pkg/errors"
)

// Transport is a connection to a server. A net.Conn is one.
type Transport interface {
	io.ReadWriteCloser
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// Conn reads lines from and writes messages to a Transport.
type Conn struct {
	conn Transport
	w    *bufio.Writer

	lines message.LineBuffer
	buf   []byte

	readWait  time.Duration
	writeWait time.Duration
}

// NewConn initializes a Conn.
//
// readWait is how long a read waits for data. writeWait is how long a write
// may take.
func NewConn(conn Transport, readWait, writeWait time.Duration) *Conn {
	return &Conn{
		conn:      conn,
		w:         bufio.NewWriter(conn),
		buf:       make([]byte, 4096),
		readWait:  readWait,
		writeWait: writeWait,
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// ReadLines waits up to the read wait for data and returns the complete lines
// it finished. A line split across reads is returned once its end arrives.
//
// Lines may be returned along with an error. If the wait ran out with nothing
// to read the error is a timeout (see isTimeout).
func (c *Conn) ReadLines() ([]string, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readWait)); err != nil {
		return nil, errors.Wrap(err, "error setting read deadline")
	}

	n, err := c.conn.Read(c.buf)

	// There may be something read even with error.
	var lines []string
	if n > 0 {
		lines = c.lines.Feed(c.buf[:n])
	}

	if err != nil {
		return lines, err
	}
	return lines, nil
}

// WriteMessage encodes a message and writes it to the connection.
func (c *Conn) WriteMessage(m message.Message) error {
	buf := message.Encode(m)

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return errors.Wrap(err, "error setting write deadline")
	}

	sz, err := c.w.Write(buf)
	if err != nil {
		return err
	}

	if sz != len(buf) {
		return errors.New("short write")
	}

	if err := c.w.Flush(); err != nil {
		return errors.Wrap(err, "flush error")
	}

	return nil
}

// isTimeout tells whether err means a deadline passed.
func isTimeout(err error) bool {
	t, ok := errors.Cause(err).(interface{ Timeout() bool })
	return ok && t.Timeout()
}
