// SPDX-License-Identifier: Unlicense OR MIT

// Package inject is a minimal stand-in for a real device-injection
// transport: it writes a planned touch stream to a socket as
// length-prefixed binary records. It implements only the touch-control-socket
// half of a real scrcpy-style transport (no ADB plumbing, video demuxing, or
// server management).
package inject

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"sort"

	"github.com/kaedeflow/touchplan/geom"
	"github.com/kaedeflow/touchplan/touch"
)

// recordHeaderSize is the byte length of the record's fixed-width length
// prefix.
const recordHeaderSize = 4

// Sender writes touch events to a control socket, clamping every coordinate
// to the device's screen bounds before it leaves the process.
type Sender struct {
	conn   net.Conn
	bounds geom.Bounds
}

// Dial opens a control socket at addr over network (normally "tcp").
func Dial(network, addr string, bounds geom.Bounds) (*Sender, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, fmt.Errorf("inject: dial %s %s: %w", network, addr, err)
	}
	return &Sender{conn: conn, bounds: bounds}, nil
}

// NewSender wraps an already-open connection, for tests and callers that
// manage their own dialing (e.g. net.Pipe).
func NewSender(conn net.Conn, bounds geom.Bounds) *Sender {
	return &Sender{conn: conn, bounds: bounds}
}

// Close closes the underlying connection.
func (s *Sender) Close() error {
	return s.conn.Close()
}

// Send writes one touch event at millisecond ms as a length-prefixed binary
// record: a uint32 record length, then int64 ms, uint8 action, int32 pointer
// id, and two float64 device coordinates.
func (s *Sender) Send(ms int, ev touch.Event) error {
	pos := s.bounds.RecalcPos(ev.Pos, 0, 0)

	var payload bytes.Buffer
	fields := []any{
		int64(ms),
		uint8(ev.Action),
		int32(ev.PointerID),
		pos.X,
		pos.Y,
	}
	for _, f := range fields {
		if err := binary.Write(&payload, binary.BigEndian, f); err != nil {
			return fmt.Errorf("inject: encoding record: %w", err)
		}
	}

	var header [recordHeaderSize]byte
	binary.BigEndian.PutUint32(header[:], uint32(payload.Len()))
	if _, err := s.conn.Write(header[:]); err != nil {
		return fmt.Errorf("inject: writing record header: %w", err)
	}
	if _, err := s.conn.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("inject: writing record body: %w", err)
	}
	return nil
}

// SendAll writes every event in events, ms-ordered, then same-ms events in
// their planned order. It stops at the first write error.
func (s *Sender) SendAll(events map[int][]touch.Event) error {
	mss := make([]int, 0, len(events))
	for ms := range events {
		mss = append(mss, ms)
	}
	sort.Ints(mss)

	for _, ms := range mss {
		for _, ev := range events[ms] {
			if err := s.Send(ms, ev); err != nil {
				return err
			}
		}
	}
	return nil
}
