package configure

import (
	"fmt"

	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

// Run configures every machine in doc. A "vm" block is applied to root; each
// entry of a "vms" block is applied to its own scope obtained from define,
// in the order the entries appear. A document with neither block configures
// nothing.
func (c *Configurator) Run(doc *opts.Document, root Scope, define DefineFunc) error {
	single, hasSingle := doc.VM()
	multi, hasMulti := doc.VMs()

	if hasSingle && hasMulti {
		return ErrAmbiguousConfiguration
	}

	if hasSingle {
		options, err := mappingValue(single, "vm")
		if err != nil {
			return err
		}
		return c.apply(root, options, c.log)
	}

	if !hasMulti {
		c.log.Debug("no vm or vms block, nothing to configure")
		return nil
	}

	instances, err := mappingValue(multi, "vms")
	if err != nil {
		return err
	}

	return instances.Each(func(name string, raw any) error {
		options, err := mappingValue(raw, fmt.Sprintf("vms.%s", name))
		if err != nil {
			return err
		}

		log := c.log.WithField("vm", name)
		err = define(name, func(scope Scope) error {
			return c.apply(scope, options, log)
		})
		if err != nil {
			return fmt.Errorf("vm %q: %w", name, err)
		}

		log.Debug("instance defined")
		return nil
	})
}
