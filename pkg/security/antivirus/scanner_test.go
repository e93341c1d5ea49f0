package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eicar = []byte(`X5O!P%@AP[4\PZX54(P^)7CC)7}$EICAR-STANDARD-ANTIVIRUS-TEST-FILE!$H+H*`)

// fakeClamd answers zPING and zINSTREAM the way clamd does and flags
// any stream containing the EICAR marker.
func fakeClamd(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveClamd(conn)
		}
	}()
	return ln.Addr().String()
}

func serveClamd(conn net.Conn) {
	defer conn.Close()
	cmd := make([]byte, 0, 16)
	one := make([]byte, 1)
	for {
		if _, err := conn.Read(one); err != nil {
			return
		}
		if one[0] == 0 {
			break
		}
		cmd = append(cmd, one[0])
	}

	switch string(cmd) {
	case "zPING":
		_, _ = conn.Write([]byte("PONG\x00"))
	case "zINSTREAM":
		var stream bytes.Buffer
		size := make([]byte, 4)
		for {
			if _, err := io.ReadFull(conn, size); err != nil {
				return
			}
			n := binary.BigEndian.Uint32(size)
			if n == 0 {
				break
			}
			if _, err := io.CopyN(&stream, conn, int64(n)); err != nil {
				return
			}
		}
		if bytes.Contains(stream.Bytes(), []byte("EICAR-STANDARD-ANTIVIRUS-TEST-FILE")) {
			_, _ = conn.Write([]byte("stream: Eicar-Test-Signature FOUND\x00"))
			return
		}
		_, _ = conn.Write([]byte("stream: OK\x00"))
	}
}

func TestClamAVScanner(t *testing.T) {
	ctx := context.Background()
	scanner := NewClamAVScanner(fakeClamd(t), 5*time.Second)

	t.Run("Should answer ping", func(t *testing.T) {
		assert.True(t, scanner.Available(ctx))
	})

	t.Run("Should pass a clean file", func(t *testing.T) {
		result := scanner.Scan(ctx, "cv.pdf", []byte("%PDF-1.7 clean resume"))
		assert.False(t, result.Infected)
		assert.NoError(t, result.Error)
		assert.Equal(t, "clamav", result.ScannerName)
	})

	t.Run("Should flag the test signature across chunks", func(t *testing.T) {
		data := append(bytes.Repeat([]byte{'a'}, maxChunk+10), eicar...)
		result := scanner.Scan(ctx, "cv.pdf", data)
		assert.True(t, result.Infected)
		assert.NoError(t, result.Error)
		assert.Equal(t, "Eicar-Test-Signature", result.ThreatName)
	})

	t.Run("Should fail closed when clamd is unreachable", func(t *testing.T) {
		down := NewClamAVScanner("127.0.0.1:1", time.Second)
		assert.False(t, down.Available(ctx))

		result := down.Scan(ctx, "cv.pdf", []byte("x"))
		assert.True(t, result.Infected)
		assert.Error(t, result.Error)
	})
}

func TestParseReply(t *testing.T) {
	result := parseReply(ScanResult{}, "INSTREAM size limit exceeded. ERROR")
	assert.True(t, result.Infected)
	assert.Error(t, result.Error)

	result = parseReply(ScanResult{}, "stream: OK\x00")
	assert.False(t, result.Infected)
}

type stubScanner struct {
	available bool
	result    ScanResult
	calls     int
}

func (s *stubScanner) Scan(context.Context, string, []byte) ScanResult {
	s.calls++
	return s.result
}
func (s *stubScanner) Name() string                   { return "stub" }
func (s *stubScanner) Available(context.Context) bool { return s.available }

func TestChainScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("Should stop at the first detection", func(t *testing.T) {
		infected := &stubScanner{available: true, result: ScanResult{Infected: true, ThreatName: "x"}}
		later := &stubScanner{available: true}
		result := NewChainScanner(infected, later).Scan(ctx, "cv.pdf", nil)

		assert.True(t, result.Infected)
		assert.Zero(t, later.calls)
	})

	t.Run("Should skip unavailable scanners", func(t *testing.T) {
		down := &stubScanner{}
		result := NewChainScanner(down, NewNoOpScanner()).Scan(ctx, "cv.pdf", nil)

		assert.False(t, result.Infected)
		assert.Zero(t, down.calls)
	})

	t.Run("Should fail closed with nothing available", func(t *testing.T) {
		result := NewChainScanner(&stubScanner{}).Scan(ctx, "cv.pdf", nil)
		assert.True(t, result.Infected)
		assert.ErrorIs(t, result.Error, ErrNoScanner)
	})
}
