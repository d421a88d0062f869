// Package config parses the process's command-line flags into the
// settings main needs to stand up an adapter, a client, and the metrics
// server. No config file format is introduced since a single-ECU tester
// CLI has no need for one.
package config

import (
	"flag"
	"fmt"
	"time"
)

// Adapter names accepted by the -adapter flag.
const (
	AdapterSerial    = "serial"
	AdapterSocketCAN = "socketcan"
)

// Config holds every value main needs to wire the client together.
type Config struct {
	Adapter        string
	Interface      string
	RequestID      uint32
	ResponseFilter uint32
	Timeout        time.Duration
	MetricsAddr    string
	LogLevel       string
}

// Parse parses args (normally os.Args[1:]) into a Config, defaulting to
// the request identifier this client's target ECU wiring uses (0x784).
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("udscan", flag.ContinueOnError)

	adapter := fs.String("adapter", AdapterSocketCAN, "CAN adapter to use: serial or socketcan")
	iface := fs.String("interface", "can0", "socketcan interface name (unused by the serial adapter)")
	requestID := fs.Uint("request-id", 0x784, "29-bit extended CAN id to transmit requests under")
	responseFilter := fs.Uint("response-filter", 0x780, "base id accepted from responses (masked by 0x7F0)")
	timeout := fs.Duration("timeout", time.Second, "response slot timeout")
	metricsAddr := fs.String("metrics-addr", ":9100", "address to serve /metrics on")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Adapter:        *adapter,
		Interface:      *iface,
		RequestID:      uint32(*requestID),
		ResponseFilter: uint32(*responseFilter),
		Timeout:        *timeout,
		MetricsAddr:    *metricsAddr,
		LogLevel:       *logLevel,
	}

	switch cfg.Adapter {
	case AdapterSerial, AdapterSocketCAN:
	default:
		return nil, fmt.Errorf("config: unknown adapter %q", cfg.Adapter)
	}

	return cfg, nil
}
