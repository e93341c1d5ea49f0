package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when every scanner in a chain is unreachable
var ErrNoScanner = errors.New("antivirus: no scanner available")

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
	Error       error  // Any error that occurred during scanning
}

// Scanner checks uploaded resumes before they reach storage.
// A result with a non-nil Error must be treated as infected.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner reports every file as clean. Used when no clamd is configured.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func NewNoOpScanner() *NoOpScanner {
	return &NoOpScanner{}
}

func (n *NoOpScanner) Scan(context.Context, string, []byte) ScanResult {
	return ScanResult{ScannerName: n.Name()}
}

func (n *NoOpScanner) Name() string {
	return "noop"
}

func (n *NoOpScanner) Available(context.Context) bool {
	return true
}

// ChainScanner runs every available scanner and stops at the first detection
type ChainScanner struct {
	scanners []Scanner
}

var _ Scanner = (*ChainScanner)(nil)

func NewChainScanner(scanners ...Scanner) *ChainScanner {
	return &ChainScanner{scanners: scanners}
}

func (c *ChainScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	scanned := false
	for _, s := range c.scanners {
		if !s.Available(ctx) {
			continue
		}
		scanned = true
		if result := s.Scan(ctx, filename, data); result.Infected || result.Error != nil {
			return result
		}
	}
	if !scanned {
		return ScanResult{Infected: true, ScannerName: c.Name(), Error: ErrNoScanner}
	}
	return ScanResult{ScannerName: c.Name()}
}

func (c *ChainScanner) Name() string {
	return "chain"
}

func (c *ChainScanner) Available(ctx context.Context) bool {
	for _, s := range c.scanners {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
