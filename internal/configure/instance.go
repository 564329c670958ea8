package configure

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

const (
	// DefaultBoxVersion accepts any published version of the box.
	DefaultBoxVersion = ">= 0"

	// DefaultMemory is the machine memory in MB when none is given.
	DefaultMemory = 512

	// DefaultCPUs is the number of virtual CPUs when none is given.
	DefaultCPUs = 1

	// DefaultStorageController is the controller extra disks attach to.
	DefaultStorageController = "SATA"
)

// NetworkSelector picks the public network attachments to use.
type NetworkSelector interface {
	SelectPublicNetworks(candidates []*opts.Map) ([]*opts.Map, error)
}

// FileChecker reports whether a host file already exists.
type FileChecker interface {
	Exists(path string) bool
}

// Configurator applies instance options to scopes.
type Configurator struct {
	networks NetworkSelector
	files    FileChecker
	log      logrus.FieldLogger
}

// New returns a Configurator. A nil log discards output.
func New(networks NetworkSelector, files FileChecker, log logrus.FieldLogger) *Configurator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Configurator{networks: networks, files: files, log: log}
}

// Apply configures scope from one instance's options. The first error
// aborts the remaining steps.
func (c *Configurator) Apply(scope Scope, options *opts.Map) error {
	return c.apply(scope, options, c.log)
}

func (c *Configurator) apply(scope Scope, options *opts.Map, log logrus.FieldLogger) error {
	box, ok, err := stringValue(options, "box", "box")
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingVMBox
	}
	scope.SetBox(box)

	version, err := boxVersion(options)
	if err != nil {
		return err
	}
	scope.SetBoxVersion(version)

	name, ok, err := stringValue(options, "name", "name")
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingVMName
	}
	provider := scope.Provider()
	provider.SetName(name)

	memory, err := intValue(options, "memory", "memory", DefaultMemory)
	if err != nil {
		return err
	}
	provider.SetMemory(memory)

	cpus, err := intValue(options, "cpus", "cpus", DefaultCPUs)
	if err != nil {
		return err
	}
	provider.SetCPUs(cpus)

	if v, ok := options.Get("auto_nat_dns_proxy"); ok && v != nil {
		enabled, isBool := v.(bool)
		if !isBool {
			return invalid("auto_nat_dns_proxy", "expected a boolean, got %T", v)
		}
		provider.SetAutoNATDNSProxy(enabled)
	}

	hostname, ok, err := stringValue(options, "hostname", "hostname")
	if err != nil {
		return err
	}
	if ok {
		scope.SetHostname(hostname)
	}

	if err := c.applyNetworks(scope, options, log); err != nil {
		return err
	}
	if err := applySyncedFolders(scope, options); err != nil {
		return err
	}
	if err := c.applyStorage(provider, options, log); err != nil {
		return err
	}
	if err := applyOverrides(scope, options, log); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"box": box, "name": name}).Debug("instance configured")
	return nil
}

func boxVersion(options *opts.Map) (*string, error) {
	v, ok := options.Get("box_version")
	if !ok {
		def := DefaultBoxVersion
		return &def, nil
	}
	switch version := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &version, nil
	case int, float64:
		s := fmt.Sprint(version)
		return &s, nil
	default:
		return nil, invalid("box_version", "expected a string, got %T", v)
	}
}

func (c *Configurator) applyNetworks(scope Scope, options *opts.Map, log logrus.FieldLogger) error {
	if v, ok := options.Get("network"); ok {
		if _, err := mappingValue(v, "network"); err != nil {
			return err
		}
	}

	forwarded, err := mappings(options, "network.forwarded_ports")
	if err != nil {
		return err
	}
	for _, entry := range forwarded {
		scope.Network(ForwardedPort, entry)
	}

	candidates, err := mappings(options, "network.public")
	if err != nil {
		return err
	}
	if len(candidates) > 0 {
		public, err := c.networks.SelectPublicNetworks(candidates)
		if err != nil {
			return err
		}
		log.WithField("count", len(public)).Debug("public networks selected")
		for _, entry := range public {
			scope.Network(PublicNetwork, entry)
		}
	}

	private, err := mappings(options, "network.private")
	if err != nil {
		return err
	}
	for _, entry := range private {
		scope.Network(PrivateNetwork, entry)
	}

	return nil
}

func applySyncedFolders(scope Scope, options *opts.Map) error {
	folders, err := mappings(options, "synced_folders")
	if err != nil {
		return err
	}

	for i, entry := range folders {
		path := fmt.Sprintf("synced_folders[%d]", i)

		host, ok, err := stringValue(entry, "host", path+".host")
		if err != nil {
			return err
		}
		if !ok {
			return invalid(path, "host is required")
		}
		guest, ok, err := stringValue(entry, "guest", path+".guest")
		if err != nil {
			return err
		}
		if !ok {
			return invalid(path, "guest is required")
		}

		raw, _ := entry.Get("opts")
		folderOpts, err := mappingValue(raw, path+".opts")
		if err != nil {
			return err
		}

		scope.SyncedFolder(host, guest, folderOpts)
	}
	return nil
}

// applyStorage creates missing disk images and attaches every disk. The
// attach port is the 1-based position in the storage list. A missing size
// is passed through as nil.
func (c *Configurator) applyStorage(provider Provider, options *opts.Map, log logrus.FieldLogger) error {
	disks, err := mappings(options, "storage")
	if err != nil {
		return err
	}

	for i, entry := range disks {
		path := fmt.Sprintf("storage[%d]", i)

		filename, ok, err := stringValue(entry, "filename", path+".filename")
		if err != nil {
			return err
		}
		if !ok {
			return invalid(path, "filename is required")
		}

		controller, ok, err := stringValue(entry, "controller", path+".controller")
		if err != nil {
			return err
		}
		if !ok {
			controller = DefaultStorageController
		}

		if c.files.Exists(filename) {
			log.WithField("filename", filename).Debug("disk exists, skipping create")
		} else {
			size, _ := entry.Get("size")
			provider.Customize("createhd", "--filename", filename, "--size", size)
		}

		provider.Customize(
			"storageattach", MachineID,
			"--storagectl", controller,
			"--port", i+1,
			"--device", 0,
			"--type", "hdd",
			"--medium", filename,
		)
	}
	return nil
}

// applyOverrides sets arbitrary properties: "ssh.forward_agent: true"
// walks to the ssh group and sets forward_agent on it.
func applyOverrides(scope Scope, options *opts.Map, log logrus.FieldLogger) error {
	raw, ok := options.Get("other")
	if !ok || raw == nil {
		return nil
	}
	overrides, err := mappingValue(raw, "other")
	if err != nil {
		return err
	}

	return overrides.Each(func(key string, value any) error {
		parts := strings.Split(key, ".")

		var target Properties = scope
		for _, part := range parts[:len(parts)-1] {
			next, err := target.Property(part)
			if err != nil {
				return fmt.Errorf("other[%q]: %w", key, err)
			}
			target = next
		}

		if err := target.SetProperty(parts[len(parts)-1], value); err != nil {
			return fmt.Errorf("other[%q]: %w", key, err)
		}

		log.WithField("property", key).Debug("override applied")
		return nil
	})
}
