package scale

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reading is one weight sample from the scale, in kilograms.
type Reading struct {
	Weight float64 `json:"weight"`
}

// Scale is the interface for reading a weighing-scale device.
// Read returns a nil Reading when the device produced no usable value;
// callers treat that the same as a failed read and leave their state
// untouched.
type Scale interface {
	// Read takes a single weight sample from the device.
	Read(ctx context.Context) (*Reading, error)
	// Close releases the device connection/handle.
	Close() error
	// IsConnected returns true if the device is reachable.
	IsConnected() bool
}

// parseReading extracts a weight from one line of scale output.
// Indicators typically emit frames like "ST,GS,+  1.234kg"; the last
// numeric token is the weight.
func parseReading(line string) (*Reading, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	line = strings.ToLower(line)
	line = strings.TrimSuffix(line, "kg")

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for i := len(fields) - 1; i >= 0; i-- {
		w, err := strconv.ParseFloat(strings.TrimPrefix(fields[i], "+"), 64)
		if err != nil {
			continue
		}
		if w < 0 {
			return nil, false
		}
		return &Reading{Weight: w}, true
	}
	return nil, false
}

// --- Serial Scale (reads a device file, e.g. /dev/ttyUSB0) ---

type serialScale struct {
	path string
}

// NewSerialScale creates a scale that reads from a serial device file.
func NewSerialScale(devicePath string) Scale {
	return &serialScale{path: devicePath}
}

func (s *serialScale) Read(ctx context.Context) (*Reading, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("scale: failed to open device %s: %w", s.path, err)
	}
	defer f.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = f.SetReadDeadline(deadline)
	}

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("scale: failed to read from device %s: %w", s.path, err)
	}

	reading, ok := parseReading(line)
	if !ok {
		return nil, nil
	}
	return reading, nil
}

func (s *serialScale) Close() error {
	return nil // serial scale opens/closes per read
}

func (s *serialScale) IsConnected() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// --- Network Scale (dials TCP, e.g. 192.168.1.50:4001) ---

type networkScale struct {
	address string
	timeout time.Duration
}

// NewNetworkScale creates a scale that connects via TCP.
// Address should include port, e.g. "192.168.1.50:4001".
func NewNetworkScale(address string) Scale {
	return &networkScale{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (s *networkScale) Read(ctx context.Context) (*Reading, error) {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.address)
	if err != nil {
		return nil, fmt.Errorf("scale: failed to connect to %s: %w", s.address, err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(s.timeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("scale: failed to read from %s: %w", s.address, err)
	}

	reading, ok := parseReading(line)
	if !ok {
		return nil, nil
	}
	return reading, nil
}

func (s *networkScale) Close() error {
	return nil // network scale opens/closes per read
}

func (s *networkScale) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", s.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null Scale (no-op, used when no device is configured) ---

type nullScale struct{}

// NewNullScale creates a no-op scale for environments without hardware.
func NewNullScale() Scale {
	return &nullScale{}
}

func (s *nullScale) Read(ctx context.Context) (*Reading, error) {
	return nil, nil
}

func (s *nullScale) Close() error {
	return nil
}

func (s *nullScale) IsConnected() bool {
	return false
}

// NewScaleFromConfig creates the appropriate Scale based on type.
//
//	scaleType: "serial", "network", or "none"
//	devicePath: device file for serial scales (e.g. "/dev/ttyUSB0")
//	address: TCP address for network scales (e.g. "192.168.1.50:4001")
func NewScaleFromConfig(scaleType, devicePath, address string) (Scale, error) {
	switch scaleType {
	case "serial":
		if devicePath == "" {
			return nil, fmt.Errorf("scale: device path is required for serial scale type")
		}
		return NewSerialScale(devicePath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("scale: address is required for network scale type")
		}
		return NewNetworkScale(address), nil
	case "none", "":
		return NewNullScale(), nil
	default:
		return nil, fmt.Errorf("scale: unknown scale type %q (use serial, network, or none)", scaleType)
	}
}
