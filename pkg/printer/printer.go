package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Transport delivers a finished ESC/POS job to a receipt printer.
type Transport interface {
	// Send writes one complete job.
	Send(ctx context.Context, job []byte) error
	// Ready reports whether the printer can currently be reached.
	Ready(ctx context.Context) bool
	// Kind names the transport ("usb", "network", "none").
	Kind() string
}

const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

// Config selects and configures a transport.
type Config struct {
	Type    string
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, usually port 9100
	Timeout time.Duration
}

// New builds the transport described by cfg. An empty type means no printer.
func New(cfg Config) (Transport, error) {
	switch cfg.Type {
	case KindUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb transport needs a device path")
		}
		return &deviceTransport{path: cfg.USBPath}, nil
	case KindNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: network transport needs an address")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &tcpTransport{address: cfg.Address, dialer: net.Dialer{Timeout: timeout}}, nil
	case KindNone, "":
		return NewRecorder(), nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network or none)", cfg.Type)
	}
}

// deviceTransport writes to a character device. The device is opened per job
// so an unplugged printer does not poison the process.
type deviceTransport struct {
	path string
}

func (t *deviceTransport) Send(_ context.Context, job []byte) error {
	f, err := os.OpenFile(t.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", t.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", t.path, err)
	}
	return nil
}

func (t *deviceTransport) Ready(context.Context) bool {
	_, err := os.Stat(t.path)
	return err == nil
}

func (t *deviceTransport) Kind() string { return KindUSB }

// tcpTransport speaks raw ESC/POS over TCP.
type tcpTransport struct {
	address string
	dialer  net.Dialer
}

func (t *tcpTransport) Send(ctx context.Context, job []byte) error {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.address)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", t.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", t.address, err)
	}
	return nil
}

func (t *tcpTransport) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	conn, err := t.dialer.DialContext(ctx, "tcp", t.address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (t *tcpTransport) Kind() string { return KindNetwork }

// Recorder is the transport used when no printer is attached. It keeps the
// jobs it receives so they can be inspected.
type Recorder struct {
	mu   sync.Mutex
	jobs [][]byte
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, job []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, append([]byte(nil), job...))
	return nil
}

func (r *Recorder) Ready(context.Context) bool { return false }

func (r *Recorder) Kind() string { return KindNone }

// Jobs returns copies of every job received so far.
func (r *Recorder) Jobs() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]byte, len(r.jobs))
	for i, j := range r.jobs {
		out[i] = append([]byte(nil), j...)
	}
	return out
}
