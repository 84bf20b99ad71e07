package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program
// name). Positional arguments left after the flags are returned in
// StructuredConfig.Args.
//
// Flags:
//
//	-a backend address in format [host]:[port] (client)
//	-listen devserver listen address in format [host]:[port]
//	-d settings database file path
//	-driver settings database driver (sqlite|bbolt)
//	-c/-config json or yaml file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-readiness-interval delay between readiness probes (e.g., "1s")
//	-terminal-hash bcrypt hash of the terminal passphrase
func ParseFlags(args []string) (*StructuredConfig, error) {
	var backendAddress, listenAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var configPath string
	var requestTimeout time.Duration
	var readinessInterval time.Duration
	var terminalHash string

	fs := flag.NewFlagSet("mylife", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&backendAddress, "a", "Backend address host:port")
	fs.Var(&listenAddress, "listen", "Devserver listen address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Settings database path")
	fs.StringVar(&databaseDriver, "driver", "", "Settings database driver (sqlite|bbolt)")
	fs.StringVar(&configPath, "c", "", "Config file path (.json, .yaml)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&readinessInterval, "readiness-interval", 0, "Delay between readiness probes")
	fs.StringVar(&terminalHash, "terminal-hash", "", "bcrypt hash of the terminal passphrase")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TerminalPasswordHash: terminalHash,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    backendAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			ReadinessInterval: readinessInterval,
		},
		FilePath: configPath,
		Args:     fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
