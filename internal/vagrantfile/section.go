package vagrantfile

import (
	"fmt"

	"github.com/faize-ai/vagrant-helpers/internal/configure"
	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

type kind int

const (
	anyKind kind = iota
	stringKind
	intKind
	boolKind
)

func (k kind) accepts(v any) bool {
	if v == nil {
		return true
	}
	switch k {
	case stringKind:
		_, ok := v.(string)
		return ok
	case intKind:
		_, ok := v.(int)
		return ok
	case boolKind:
		_, ok := v.(bool)
		return ok
	default:
		return true
	}
}

func (k kind) String() string {
	switch k {
	case stringKind:
		return "a string"
	case intKind:
		return "an integer"
	case boolKind:
		return "a boolean"
	default:
		return "a value"
	}
}

// Section is a named group of settings, such as config.ssh. Only the keys
// it was declared with can be assigned.
type Section struct {
	name    string
	allowed map[string]kind
	values  *opts.Map
}

func newSection(name string, allowed map[string]kind) *Section {
	return &Section{name: name, allowed: allowed, values: opts.NewMap()}
}

// Name returns the section's name.
func (s *Section) Name() string {
	return s.name
}

// Get returns an assigned value.
func (s *Section) Get(key string) (any, bool) {
	return s.values.Get(key)
}

// Values returns the assignments in the order they were first made.
func (s *Section) Values() *opts.Map {
	return s.values
}

// Property implements configure.Properties. Sections have no nested groups.
func (s *Section) Property(name string) (configure.Properties, error) {
	return nil, fmt.Errorf("%w: %s.%s", configure.ErrUnknownProperty, s.name, name)
}

// SetProperty implements configure.Properties.
func (s *Section) SetProperty(name string, value any) error {
	k, ok := s.allowed[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", configure.ErrUnknownProperty, s.name, name)
	}
	if !k.accepts(value) {
		return fmt.Errorf("%s.%s: %w: expected %s, got %T", s.name, name, configure.ErrInvalidOption, k, value)
	}
	s.values.Set(name, value)
	return nil
}

func (s *Section) set(name string, value any) {
	s.values.Set(name, value)
}

var vmKeys = map[string]kind{
	"box":                   stringKind,
	"box_version":           stringKind,
	"hostname":              stringKind,
	"box_url":               anyKind,
	"box_check_update":      boolKind,
	"box_download_insecure": boolKind,
	"boot_timeout":          intKind,
	"communicator":          stringKind,
	"guest":                 stringKind,
	"graceful_halt_timeout": intKind,
	"post_up_message":       stringKind,
	"usable_port_range":     anyKind,
}

var sshKeys = map[string]kind{
	"username":         stringKind,
	"password":         stringKind,
	"host":             stringKind,
	"port":             intKind,
	"guest_port":       intKind,
	"private_key_path": anyKind,
	"forward_agent":    boolKind,
	"forward_x11":      boolKind,
	"forward_env":      anyKind,
	"insert_key":       boolKind,
	"keep_alive":       boolKind,
	"shell":            stringKind,
	"extra_args":       anyKind,
	"config":           stringKind,
	"compression":      boolKind,
	"connect_timeout":  intKind,
}

var winrmKeys = map[string]kind{
	"username":    stringKind,
	"password":    stringKind,
	"host":        stringKind,
	"port":        intKind,
	"guest_port":  intKind,
	"transport":   anyKind,
	"timeout":     intKind,
	"retry_limit": intKind,
	"retry_delay": intKind,
}

var vagrantKeys = map[string]kind{
	"plugins":   anyKind,
	"sensitive": anyKind,
}

var virtualboxKeys = map[string]kind{
	"name":                  stringKind,
	"memory":                intKind,
	"cpus":                  intKind,
	"gui":                   boolKind,
	"linked_clone":          boolKind,
	"default_nic_type":      stringKind,
	"check_guest_additions": boolKind,
	"functional_vboxsf":     boolKind,
	"auto_nat_dns_proxy":    boolKind,
}
