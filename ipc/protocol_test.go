package ipc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"net"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	env, err := NewEnvelope(TypeHello, HelloMessage{Team: 2, Name: "red"})
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteEnvelope(&buf, env); err != nil {
		t.Fatalf("WriteEnvelope() failed: %v", err)
	}

	if got := binary.LittleEndian.Uint32(buf.Bytes()[:4]); int(got) != buf.Len()-4 {
		t.Errorf("length prefix = %d, want %d", got, buf.Len()-4)
	}

	got, err := ReadEnvelope(&buf)
	if err != nil {
		t.Fatalf("ReadEnvelope() failed: %v", err)
	}
	if got.Type != TypeHello || string(got.Data) != `{"team":2,"name":"red"}` {
		t.Errorf("ReadEnvelope() = %s %s", got.Type, got.Data)
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, length := range []uint32{0, MaxFrameSize + 1} {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, length)
		_, err := ReadEnvelope(&buf)
		if !errors.Is(err, ErrFrameLength) {
			t.Errorf("length %d: err = %v, want ErrFrameLength", length, err)
		}
	}
}

func TestReadEnvelopeTruncated(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(10))
	buf.WriteString(`{"ty`)
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("ReadEnvelope() accepted a truncated payload")
	}
}

func TestReadEnvelopeBadJSON(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(3))
	buf.WriteString(`{{{`)
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("ReadEnvelope() accepted invalid JSON")
	}
}

func TestConnectionOverStream(t *testing.T) {
	server, client := net.Pipe()
	conn := NewConnection(NewStreamTransport(server), nil)
	conn.RegisterHandler(TypeHello, func(env Envelope) (*Envelope, error) {
		ack, err := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
		return &ack, err
	})
	done := make(chan struct{})
	go func() {
		conn.ReadLoop()
		close(done)
	}()

	peer := NewStreamTransport(client)
	// Unknown types are skipped without a reply.
	unknown, _ := NewEnvelope("mystery", nil)
	if err := peer.Write(unknown); err != nil {
		t.Fatal(err)
	}
	hello, _ := NewEnvelope(TypeHello, HelloMessage{Team: 1})
	if err := peer.Write(hello); err != nil {
		t.Fatal(err)
	}

	reply, err := peer.Read()
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if reply.Type != TypeAck {
		t.Errorf("reply type = %q, want %q", reply.Type, TypeAck)
	}

	peer.Close()
	<-done
}
