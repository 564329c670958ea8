package network

import (
	"fmt"
	"net"
)

// Interfaces abstracts the host's interface table so enumeration can be
// tested without touching the machine's real network configuration.
type Interfaces interface {
	Interfaces() ([]net.Interface, error)
	Addrs(iface *net.Interface) ([]net.Addr, error)
}

type hostInterfaces struct{}

// NewHostInterfaces returns the live interface table.
func NewHostInterfaces() Interfaces {
	return &hostInterfaces{}
}

func (hostInterfaces) Interfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

func (hostInterfaces) Addrs(iface *net.Interface) ([]net.Addr, error) {
	return iface.Addrs()
}

// Enumerator lists the private IPv4 networks on the host.
type Enumerator struct {
	ifaces Interfaces
}

// NewEnumerator returns an Enumerator over ifaces.
func NewEnumerator(ifaces Interfaces) *Enumerator {
	return &Enumerator{ifaces: ifaces}
}

// HostNetworks returns one HostNetwork per private (RFC 1918) IPv4 address
// found on the host, in the order the interface table reports them.
// Addresses that are IPv6, public, or lack a usable netmask are skipped.
func (e *Enumerator) HostNetworks() ([]HostNetwork, error) {
	ifaces, err := e.ifaces.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	var networks []HostNetwork
	for i := range ifaces {
		iface := &ifaces[i]
		addrs, err := e.ifaces.Addrs(iface)
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses of %s: %w", iface.Name, err)
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			hn, ok := privateNetwork(iface.Name, ipnet)
			if !ok {
				continue
			}
			networks = append(networks, hn)
		}
	}

	return networks, nil
}

func privateNetwork(name string, addr *net.IPNet) (HostNetwork, bool) {
	ip := addr.IP.To4()
	if ip == nil || !ip.IsPrivate() {
		return HostNetwork{}, false
	}

	mask := addr.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(mask) != net.IPv4len {
		return HostNetwork{}, false
	}

	prefix, err := PrefixLength(net.IP(mask).String())
	if err != nil {
		return HostNetwork{}, false
	}

	return HostNetwork{
		Interface: name,
		Network: &net.IPNet{
			IP:   ip.Mask(mask),
			Mask: net.CIDRMask(prefix, 32),
		},
	}, true
}
