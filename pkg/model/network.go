package model

import (
	"fmt"
	"strings"
)

// Network selects which market-maker deployment (and therefore which asset
// and pair collections) is in scope.
type Network string

const (
	NetworkSignet  Network = "signet"
	NetworkRegtest Network = "regtest"
)

// DefaultNetwork is selected when nothing else is requested.
const DefaultNetwork = NetworkSignet

// Networks lists every supported network in display order.
var Networks = []Network{NetworkSignet, NetworkRegtest}

// ParseNetwork maps user input onto a known network (case-insensitive).
// It always returns one of the package constants, never a view of s.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signet":
		return NetworkSignet, nil
	case "regtest":
		return NetworkRegtest, nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

// Valid reports whether n is one of the supported networks.
func (n Network) Valid() bool {
	return n == NetworkSignet || n == NetworkRegtest
}

func (n Network) String() string {
	return string(n)
}
