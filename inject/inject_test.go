// SPDX-License-Identifier: Unlicense OR MIT

package inject

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/kaedeflow/touchplan/geom"
	"github.com/kaedeflow/touchplan/touch"
)

func readRecord(t *testing.T, r io.Reader) (ms int64, action uint8, pid int32, x, y float64) {
	t.Helper()
	var header [recordHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		t.Fatalf("reading header: %v", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		t.Fatalf("reading body: %v", err)
	}
	br := bytes.NewReader(body)
	binary.Read(br, binary.BigEndian, &ms)
	binary.Read(br, binary.BigEndian, &action)
	binary.Read(br, binary.BigEndian, &pid)
	binary.Read(br, binary.BigEndian, &x)
	binary.Read(br, binary.BigEndian, &y)
	return
}

func TestSendWritesLengthPrefixedRecord(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sender := NewSender(client, geom.DefaultBounds)
	done := make(chan error, 1)
	go func() {
		done <- sender.Send(1234, touch.Event{Pos: geom.Pt(500, 800), Action: touch.Down, PointerID: 1000})
	}()

	ms, action, pid, x, y := readRecord(t, server)
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ms != 1234 || action != uint8(touch.Down) || pid != 1000 || x != 500 || y != 800 {
		t.Fatalf("got ms=%d action=%d pid=%d pos=(%v,%v)", ms, action, pid, x, y)
	}
}

func TestSendClampsToBounds(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	bounds := geom.Bounds{Width: 1000, Height: 2000}
	sender := NewSender(client, bounds)
	done := make(chan error, 1)
	go func() {
		done <- sender.Send(0, touch.Event{Pos: geom.Pt(-50, 5000), Action: touch.Move, PointerID: 1})
	}()

	_, _, _, x, y := readRecord(t, server)
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}
	if x != 0 || y != bounds.Height {
		t.Fatalf("got pos=(%v,%v), want clamped to (0, %v)", x, y, bounds.Height)
	}
}

func TestSendAllOrdersByMillisecond(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sender := NewSender(client, geom.DefaultBounds)
	events := map[int][]touch.Event{
		20: {{Pos: geom.Pt(1, 1), Action: touch.Up, PointerID: 1000}},
		10: {{Pos: geom.Pt(2, 2), Action: touch.Down, PointerID: 1000}},
	}
	done := make(chan error, 1)
	go func() { done <- sender.SendAll(events) }()

	first, _, _, _, _ := readRecord(t, server)
	second, _, _, _, _ := readRecord(t, server)
	if err := <-done; err != nil {
		t.Fatalf("SendAll: %v", err)
	}
	if first != 10 || second != 20 {
		t.Fatalf("got order %d, %d, want 10, 20", first, second)
	}
}
