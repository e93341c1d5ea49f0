package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// maxChunk stays below clamd's default StreamMaxLength chunking
const maxChunk = 1 << 20

// ClamAVScanner talks to a clamd daemon over zINSTREAM
type ClamAVScanner struct {
	address string // host:port or a unix socket path
	timeout time.Duration
	dialer  net.Dialer
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a scanner for address, e.g. "localhost:3310"
// or "/var/run/clamav/clamd.sock".
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := c.dialer.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	return conn, nil
}

// Available pings clamd
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Scan streams data to clamd. Connection and protocol failures are
// reported as infected with Error set.
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(format string, err error) ScanResult {
		result.Infected = true
		result.Error = fmt.Errorf(format, err)
		return result
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail("connect to clamd: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fail("send command: %w", err)
	}

	size := make([]byte, 4)
	for start := 0; start < len(data); start += maxChunk {
		end := min(start+maxChunk, len(data))
		binary.BigEndian.PutUint32(size, uint32(end-start))
		if _, err := conn.Write(size); err != nil {
			return fail("send chunk size: %w", err)
		}
		if _, err := conn.Write(data[start:end]); err != nil {
			return fail("send chunk: %w", err)
		}
	}
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fail("send end marker: %w", err)
	}

	reply, err := io.ReadAll(io.LimitReader(conn, 1024))
	if err != nil {
		return fail("read reply: %w", err)
	}
	return parseReply(result, string(reply))
}

// parseReply interprets "stream: OK", "stream: <name> FOUND" and
// "<message> ERROR" replies.
func parseReply(result ScanResult, reply string) ScanResult {
	reply = strings.TrimSpace(strings.TrimRight(reply, "\x00"))
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSpace(strings.TrimSuffix(threat, "FOUND"))
		}
	case strings.HasSuffix(reply, "OK"):
	default:
		result.Infected = true
		result.Error = fmt.Errorf("clamd: %s", reply)
	}
	return result
}
