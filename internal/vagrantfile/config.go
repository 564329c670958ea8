// Package vagrantfile records machine configuration and renders it as a
// Vagrantfile.
package vagrantfile

import (
	"fmt"

	"github.com/faize-ai/vagrant-helpers/internal/configure"
	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

// ProviderName is the provider every machine is configured for.
const ProviderName = "virtualbox"

// Network is one config.vm.network call.
type Network struct {
	Kind    configure.NetworkKind
	Options *opts.Map
}

// SyncedFolder is one config.vm.synced_folder call.
type SyncedFolder struct {
	Host    string
	Guest   string
	Options *opts.Map
}

// Machine is a named machine defined with config.vm.define.
type Machine struct {
	Name   string
	Config *Config
}

// Config is the configuration of the root scope or of one defined machine.
type Config struct {
	vm       *Section
	ssh      *Section
	winrm    *Section
	vagrant  *Section
	provider *Provider

	networks []Network
	folders  []SyncedFolder
	machines []Machine
}

var _ configure.Scope = (*Config)(nil)

// New returns an empty Config.
func New() *Config {
	return &Config{
		vm:       newSection("vm", vmKeys),
		ssh:      newSection("ssh", sshKeys),
		winrm:    newSection("winrm", winrmKeys),
		vagrant:  newSection("vagrant", vagrantKeys),
		provider: &Provider{settings: newSection(ProviderName, virtualboxKeys)},
	}
}

// SetBox implements configure.Scope.
func (c *Config) SetBox(box string) {
	c.vm.set("box", box)
}

// SetBoxVersion implements configure.Scope. A nil version assigns nil.
func (c *Config) SetBoxVersion(version *string) {
	if version == nil {
		c.vm.set("box_version", nil)
		return
	}
	c.vm.set("box_version", *version)
}

// SetHostname implements configure.Scope.
func (c *Config) SetHostname(hostname string) {
	c.vm.set("hostname", hostname)
}

// Provider implements configure.Scope.
func (c *Config) Provider() configure.Provider {
	return c.provider
}

// Network implements configure.Scope.
func (c *Config) Network(kind configure.NetworkKind, options *opts.Map) {
	c.networks = append(c.networks, Network{Kind: kind, Options: options})
}

// SyncedFolder implements configure.Scope.
func (c *Config) SyncedFolder(host, guest string, options *opts.Map) {
	c.folders = append(c.folders, SyncedFolder{Host: host, Guest: guest, Options: options})
}

// Property returns a settings group: vm, ssh, winrm, vagrant or virtualbox.
func (c *Config) Property(name string) (configure.Properties, error) {
	switch name {
	case "vm":
		return c.vm, nil
	case "ssh":
		return c.ssh, nil
	case "winrm":
		return c.winrm, nil
	case "vagrant":
		return c.vagrant, nil
	case ProviderName:
		return c.provider.settings, nil
	default:
		return nil, fmt.Errorf("%w: %s", configure.ErrUnknownProperty, name)
	}
}

// SetProperty assigns the machine-level shortcuts box, box_version and
// hostname.
func (c *Config) SetProperty(name string, value any) error {
	switch name {
	case "box", "box_version", "hostname":
		return c.vm.SetProperty(name, value)
	default:
		return fmt.Errorf("%w: %s", configure.ErrUnknownProperty, name)
	}
}

// Define configures a named machine in its own Config. The machine is kept
// only if fn succeeds.
func (c *Config) Define(name string, fn func(configure.Scope) error) error {
	child := New()
	if err := fn(child); err != nil {
		return err
	}
	c.machines = append(c.machines, Machine{Name: name, Config: child})
	return nil
}

// VM returns the config.vm settings.
func (c *Config) VM() *Section { return c.vm }

// SSH returns the config.ssh settings.
func (c *Config) SSH() *Section { return c.ssh }

// Networks returns the network attachments in the order they were added.
func (c *Config) Networks() []Network { return c.networks }

// SyncedFolders returns the synced folders in the order they were added.
func (c *Config) SyncedFolders() []SyncedFolder { return c.folders }

// Machines returns the named machines in definition order.
func (c *Config) Machines() []Machine { return c.machines }

// VirtualBox returns the provider settings.
func (c *Config) VirtualBox() *Provider { return c.provider }

// Provider holds config.vm.provider :virtualbox settings.
type Provider struct {
	settings       *Section
	customizations [][]any
}

var _ configure.Provider = (*Provider)(nil)

// SetName implements configure.Provider.
func (p *Provider) SetName(name string) {
	p.settings.set("name", name)
}

// SetMemory implements configure.Provider.
func (p *Provider) SetMemory(mb *int) {
	p.settings.set("memory", intOrNil(mb))
}

// SetCPUs implements configure.Provider.
func (p *Provider) SetCPUs(cpus *int) {
	p.settings.set("cpus", intOrNil(cpus))
}

// SetAutoNATDNSProxy implements configure.Provider.
func (p *Provider) SetAutoNATDNSProxy(enabled bool) {
	p.settings.set("auto_nat_dns_proxy", enabled)
}

// Customize implements configure.Provider.
func (p *Provider) Customize(args ...any) {
	p.customizations = append(p.customizations, args)
}

// Settings returns the provider settings.
func (p *Provider) Settings() *Section { return p.settings }

// Customizations returns the queued provider commands.
func (p *Provider) Customizations() [][]any { return p.customizations }

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
