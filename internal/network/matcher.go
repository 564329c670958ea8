package network

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

// TargetKey is the public network option naming the host CIDR a candidate
// is meant for. It is removed before the candidate is used.
const TargetKey = "network"

// Lister returns the networks the host is attached to.
type Lister interface {
	HostNetworks() ([]HostNetwork, error)
}

// Matcher selects public network attachments reachable from the host.
type Matcher struct {
	hosts Lister
	log   logrus.FieldLogger
}

// NewMatcher returns a Matcher backed by hosts. A nil log discards output.
func NewMatcher(hosts Lister, log logrus.FieldLogger) *Matcher {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Matcher{hosts: hosts, log: log}
}

// SelectPublicNetworks walks candidates in order. Untagged candidates are
// always accepted. The first tagged candidate whose CIDR equals a host
// network is accepted with its tag removed, and nothing after it is
// considered, untagged candidates included. Tagged candidates without a
// match are dropped. The early exit is part of the options file contract;
// this is not a filter.
func (m *Matcher) SelectPublicNetworks(candidates []*opts.Map) ([]*opts.Map, error) {
	var (
		selected []*opts.Map
		hosts    []HostNetwork
		listed   bool
	)

	for i, candidate := range candidates {
		raw, tagged := candidate.Get(TargetKey)
		if !tagged || raw == nil {
			candidate.Delete(TargetKey)
			selected = append(selected, candidate)
			continue
		}

		cidr, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("network.public[%d]: %w: expected a string, got %T", i, ErrInvalidCIDR, raw)
		}
		target, err := ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("network.public[%d]: %w", i, err)
		}

		if !listed {
			hosts, err = m.hosts.HostNetworks()
			if err != nil {
				return nil, err
			}
			listed = true
		}

		for _, h := range hosts {
			if sameNetwork(target, h.Network) {
				m.log.WithFields(logrus.Fields{
					"network":   target.String(),
					"interface": h.Interface,
				}).Debug("public network matches host network")
				candidate.Delete(TargetKey)
				return append(selected, candidate), nil
			}
		}

		m.log.WithField("network", target.String()).Debug("public network not attached to host, skipping")
	}

	return selected, nil
}
