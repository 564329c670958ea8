// Package configure applies options file blocks to virtual machine
// configuration scopes.
//
// A Scope is the mutable builder for one machine. The package never boots
// or provisions anything; it only translates options into setter calls on
// whatever Scope implementation the caller supplies.
package configure

import (
	"errors"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

var (
	// ErrMissingVMBox is returned when an instance has no box.
	ErrMissingVMBox = errors.New("missing vm.box option in opts file")

	// ErrMissingVMName is returned when an instance has no name.
	ErrMissingVMName = errors.New("missing vm.name option in opts file")

	// ErrAmbiguousConfiguration is returned when both "vm" and "vms" are present.
	ErrAmbiguousConfiguration = errors.New("opts file defines both `vm` and `vms`; use only one")

	// ErrUnknownProperty is returned when an override path does not exist on the scope.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrInvalidOption is returned when an option has the wrong shape or type.
	ErrInvalidOption = errors.New("invalid option")
)

// NetworkKind classifies a network attachment.
type NetworkKind string

const (
	ForwardedPort  NetworkKind = "forwarded_port"
	PublicNetwork  NetworkKind = "public_network"
	PrivateNetwork NetworkKind = "private_network"
)

// Symbol is a bare identifier argument, as opposed to a string literal.
type Symbol string

// MachineID stands for the machine's own identifier in provider commands.
const MachineID Symbol = "id"

// Properties is a tree of named settings reachable by dotted paths.
type Properties interface {
	// Property returns the nested settings group called name.
	Property(name string) (Properties, error)

	// SetProperty assigns value to the setting called name.
	SetProperty(name string, value any) error
}

// Provider holds the hypervisor-specific settings of a machine.
type Provider interface {
	SetName(name string)
	SetMemory(mb *int)
	SetCPUs(cpus *int)
	SetAutoNATDNSProxy(enabled bool)

	// Customize queues a raw provider command, such as creating a disk.
	Customize(args ...any)
}

// Scope is the configuration of one machine.
type Scope interface {
	Properties

	SetBox(box string)
	SetBoxVersion(version *string)
	SetHostname(hostname string)
	Provider() Provider

	// Network adds a network attachment; options are passed through verbatim.
	Network(kind NetworkKind, options *opts.Map)

	// SyncedFolder shares a host directory with the guest.
	SyncedFolder(host, guest string, options *opts.Map)
}

// DefineFunc creates an isolated child scope called name and configures it
// with fn.
type DefineFunc func(name string, fn func(Scope) error) error
