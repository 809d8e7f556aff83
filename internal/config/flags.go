package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the configuration flags in args (without the program
// name). Unset flags leave their fields zero so they do not override other
// sources.
//
// Flags:
//
//	-a bind address in format [host]:[port]
//	-public-url externally advertised base URL
//	-app-keys comma-separated signing keys
//	-c/-config json file path with configs
func parseFlags(args []string) (*ServerConfig, error) {
	var address NetAddress
	var publicURL string
	var appKeys Keys
	var jsonConfigPath string

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&address, "a", "Bind address host:port")
	fs.StringVar(&publicURL, "public-url", "", "Public URL")
	fs.TextVar(&appKeys, "app-keys", Keys(nil), "Comma-separated app keys")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &ServerConfig{
		Host:      address.Host,
		Port:      address.Port,
		PublicURL: publicURL,
		App: App{
			Keys: appKeys,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// The host must be an IP address or "localhost"; the port must be in
// 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
