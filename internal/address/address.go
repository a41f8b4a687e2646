// Package address parses matrix service endpoint addresses.
package address

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Scheme is an optional prefix accepted in front of host:port.
const Scheme = "grpc://"

// Split strips an optional grpc:// prefix and splits host:port.
func Split(address string) (host string, port int, err error) {
	address = strings.TrimPrefix(address, Scheme)
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return "", 0, err
	}
	if host == "" {
		return "", 0, errors.New("missing host")
	}
	port, err = strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}

// Normalize returns the dialable host:port form of address.
func Normalize(address string) (string, error) {
	host, port, err := Split(address)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
