package vagrantfile

import "fmt"

// Summary is a one-line overview of a configured machine.
type Summary struct {
	Name     string
	Box      string
	Memory   string
	CPUs     string
	Networks int
	Folders  int
	Disks    int
}

// Summaries returns one Summary per defined machine, or one for the root
// scope when it was configured directly.
func (c *Config) Summaries() []Summary {
	if len(c.machines) > 0 {
		out := make([]Summary, 0, len(c.machines))
		for _, m := range c.machines {
			s := m.Config.summary()
			s.Name = m.Name
			out = append(out, s)
		}
		return out
	}

	if c.vm.values.Len() == 0 {
		return nil
	}
	s := c.summary()
	if name, ok := c.provider.settings.Get("name"); ok {
		s.Name = display(name)
	}
	return []Summary{s}
}

func (c *Config) summary() Summary {
	s := Summary{
		Networks: len(c.networks),
		Folders:  len(c.folders),
	}
	if box, ok := c.vm.Get("box"); ok {
		s.Box = display(box)
	}
	if mem, ok := c.provider.settings.Get("memory"); ok {
		s.Memory = display(mem)
	}
	if cpus, ok := c.provider.settings.Get("cpus"); ok {
		s.CPUs = display(cpus)
	}
	for _, args := range c.provider.customizations {
		if len(args) > 0 && args[0] == "storageattach" {
			s.Disks++
		}
	}
	return s
}

func display(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
