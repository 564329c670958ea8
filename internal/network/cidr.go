// Package network inspects the host's private IPv4 networks and picks the
// public network attachments that are reachable from them.
package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"net"
)

var (
	// ErrInvalidMask is returned for masks that are not contiguous dotted IPv4 masks.
	ErrInvalidMask = errors.New("invalid netmask")

	// ErrInvalidCIDR is returned when a requested network is not valid CIDR notation.
	ErrInvalidCIDR = errors.New("invalid CIDR")
)

// PrefixLength converts a dotted-decimal mask such as "255.255.255.0" into
// its prefix length (24). The mask is inverted and the host part must be
// one less than a power of two; anything else is rejected rather than
// truncated.
func PrefixLength(mask string) (int, error) {
	ip := net.ParseIP(mask).To4()
	if ip == nil {
		return 0, fmt.Errorf("%w %q: not an IPv4 address", ErrInvalidMask, mask)
	}

	inverted := uint64(^binary.BigEndian.Uint32(ip))
	hosts := inverted + 1
	if bits.OnesCount64(hosts) != 1 {
		return 0, fmt.Errorf("%w %q: bits are not contiguous", ErrInvalidMask, mask)
	}

	return 32 - bits.TrailingZeros64(hosts), nil
}

// HostNetwork is a private IPv4 network attached to a local interface.
type HostNetwork struct {
	Interface string
	Network   *net.IPNet
}

// String returns the network in CIDR notation.
func (h HostNetwork) String() string {
	return h.Network.String()
}

// ParseCIDR parses a requested network. Host bits are masked off, so
// "10.0.0.5/24" and "10.0.0.0/24" name the same network.
func ParseCIDR(s string) (*net.IPNet, error) {
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidCIDR, s, err)
	}
	return ipnet, nil
}

// sameNetwork reports exact equality: same address and same prefix, not
// merely overlapping ranges.
func sameNetwork(a, b *net.IPNet) bool {
	aOnes, aBits := a.Mask.Size()
	bOnes, bBits := b.Mask.Size()
	return aOnes == bOnes && aBits == bBits && a.IP.Equal(b.IP)
}
