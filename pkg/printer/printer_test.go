package printer

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_StartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, Width58mm, doc.Width())
	assert.Equal(t, []byte{esc, '@'}, doc.Bytes())
}

func TestDocument_Columns(t *testing.T) {
	doc := NewDocument(20)
	doc.Columns("Subtotal:", "100.00")

	line := string(bytes.TrimPrefix(doc.Bytes(), []byte{esc, '@'}))
	assert.Equal(t, "Subtotal:     100.00\n", line)
}

func TestDocument_ColumnsTruncatesLeft(t *testing.T) {
	doc := NewDocument(16)
	doc.Item(2, "Extra Long Product Name", "99.50")

	line := string(bytes.TrimPrefix(doc.Bytes(), []byte{esc, '@'}))
	assert.Equal(t, "2x Extra.  99.50\n", line)
}

func TestDocument_Rule(t *testing.T) {
	doc := NewDocument(8)
	doc.Rule('=')
	assert.True(t, bytes.HasSuffix(doc.Bytes(), []byte("========\n")))
}

func TestDocument_Commands(t *testing.T) {
	doc := NewDocument(32)
	doc.Align(AlignCenter).Bold(true).Size(SizeDouble).Cut(true)

	want := []byte{esc, '@', esc, 'a', 1, esc, 'E', 1, gs, '!', 0x11, gs, 'V', 1}
	assert.Equal(t, want, doc.Bytes())
}

func TestNew(t *testing.T) {
	tr, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, KindNone, tr.Kind())

	_, err = New(Config{Type: KindUSB})
	assert.Error(t, err)
	_, err = New(Config{Type: KindNetwork})
	assert.Error(t, err)
	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)

	tr, err = New(Config{Type: KindUSB, USBPath: "/nonexistent/lp9"})
	require.NoError(t, err)
	assert.False(t, tr.Ready(context.Background()))
	assert.Error(t, tr.Send(context.Background(), []byte("x")))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Send(context.Background(), []byte("job-1")))

	jobs := r.Jobs()
	require.Len(t, jobs, 1)
	jobs[0][0] = 'X'
	assert.Equal(t, "job-1", string(r.Jobs()[0]))
	assert.False(t, r.Ready(context.Background()))
}

func TestTCPTransport_Send(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	tr, err := New(Config{Type: KindNetwork, Address: ln.Addr().String()})
	require.NoError(t, err)
	require.NoError(t, tr.Send(context.Background(), []byte("receipt")))

	assert.Equal(t, "receipt", string(<-received))
}
