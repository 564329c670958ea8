package configure

import (
	"fmt"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

type recordedNetwork struct {
	kind    NetworkKind
	options *opts.Map
}

type recordedFolder struct {
	host, guest string
	options     *opts.Map
}

// fakeScope records every call made on it.
type fakeScope struct {
	calls []string

	box        string
	boxVersion *string
	hostname   string
	networks   []recordedNetwork
	folders    []recordedFolder
	provider   *fakeProvider
	groups     map[string]*fakeGroup
	root       *fakeGroup
}

func newFakeScope() *fakeScope {
	s := &fakeScope{
		groups: map[string]*fakeGroup{
			"ssh": {name: "ssh", allowed: map[string]bool{"forward_agent": true, "username": true}},
		},
	}
	s.provider = &fakeProvider{scope: s}
	s.root = &fakeGroup{name: "", allowed: map[string]bool{"hostname": true}}
	return s
}

func (s *fakeScope) SetBox(box string) {
	s.calls = append(s.calls, "box")
	s.box = box
}

func (s *fakeScope) SetBoxVersion(version *string) {
	s.calls = append(s.calls, "box_version")
	s.boxVersion = version
}

func (s *fakeScope) SetHostname(hostname string) {
	s.calls = append(s.calls, "hostname")
	s.hostname = hostname
}

func (s *fakeScope) Provider() Provider {
	return s.provider
}

func (s *fakeScope) Network(kind NetworkKind, options *opts.Map) {
	s.calls = append(s.calls, string(kind))
	s.networks = append(s.networks, recordedNetwork{kind: kind, options: options})
}

func (s *fakeScope) SyncedFolder(host, guest string, options *opts.Map) {
	s.calls = append(s.calls, "synced_folder")
	s.folders = append(s.folders, recordedFolder{host: host, guest: guest, options: options})
}

func (s *fakeScope) Property(name string) (Properties, error) {
	g, ok := s.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return g, nil
}

func (s *fakeScope) SetProperty(name string, value any) error {
	if name == "hostname" {
		hostname, _ := value.(string)
		s.SetHostname(hostname)
		return nil
	}
	return s.root.SetProperty(name, value)
}

type fakeGroup struct {
	name    string
	allowed map[string]bool
	values  map[string]any
}

func (g *fakeGroup) Property(name string) (Properties, error) {
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, g.name, name)
}

func (g *fakeGroup) SetProperty(name string, value any) error {
	if !g.allowed[name] {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, g.name, name)
	}
	if g.values == nil {
		g.values = map[string]any{}
	}
	g.values[name] = value
	return nil
}

type fakeProvider struct {
	scope *fakeScope

	name           string
	memory         *int
	cpus           *int
	dnsProxy       *bool
	customizations [][]any
}

func (p *fakeProvider) SetName(name string) {
	p.scope.calls = append(p.scope.calls, "provider.name")
	p.name = name
}

func (p *fakeProvider) SetMemory(mb *int) {
	p.scope.calls = append(p.scope.calls, "provider.memory")
	p.memory = mb
}

func (p *fakeProvider) SetCPUs(cpus *int) {
	p.scope.calls = append(p.scope.calls, "provider.cpus")
	p.cpus = cpus
}

func (p *fakeProvider) SetAutoNATDNSProxy(enabled bool) {
	p.scope.calls = append(p.scope.calls, "provider.auto_nat_dns_proxy")
	p.dnsProxy = &enabled
}

func (p *fakeProvider) Customize(args ...any) {
	p.scope.calls = append(p.scope.calls, fmt.Sprintf("customize.%v", args[0]))
	p.customizations = append(p.customizations, args)
}

// passthroughSelector behaves like a host with no private networks.
type passthroughSelector struct {
	calls int
}

func (p *passthroughSelector) SelectPublicNetworks(candidates []*opts.Map) ([]*opts.Map, error) {
	p.calls++
	var out []*opts.Map
	for _, c := range candidates {
		if !c.Has("network") {
			out = append(out, c)
		}
	}
	return out, nil
}

type fileSet map[string]bool

func (f fileSet) Exists(path string) bool {
	return f[path]
}
