package vagrantfile

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/faize-ai/vagrant-helpers/internal/configure"
	"github.com/faize-ai/vagrant-helpers/internal/opts"
)

// Header describes where a rendered Vagrantfile came from.
type Header struct {
	Source string
	RunID  string
}

// Render writes c as a Vagrantfile.
func Render(w io.Writer, c *Config, h Header) error {
	var buf bytes.Buffer

	buf.WriteString("# -*- mode: ruby -*-\n# vi: set ft=ruby :\n")
	if h.Source != "" {
		fmt.Fprintf(&buf, "# Generated by vagrant-helpers from %s\n", h.Source)
	}
	if h.RunID != "" {
		fmt.Fprintf(&buf, "# Run ID: %s\n", h.RunID)
	}
	buf.WriteString("\nVagrant.configure(\"2\") do |config|\n")
	writeConfig(&buf, c, "config", "  ")
	buf.WriteString("end\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeConfig(buf *bytes.Buffer, c *Config, v, indent string) {
	writeSection(buf, c.vm, v+".vm", indent)
	for _, n := range c.networks {
		fmt.Fprintf(buf, "%s%s.vm.network :%s%s\n", indent, v, n.Kind, keywordArgs(n.Options))
	}
	for _, f := range c.folders {
		fmt.Fprintf(buf, "%s%s.vm.synced_folder %s, %s%s\n", indent, v, rubyString(f.Host), rubyString(f.Guest), keywordArgs(f.Options))
	}
	writeSection(buf, c.ssh, v+".ssh", indent)
	writeSection(buf, c.winrm, v+".winrm", indent)
	writeSection(buf, c.vagrant, v+".vagrant", indent)

	p := c.provider
	if p.settings.values.Len() > 0 || len(p.customizations) > 0 {
		fmt.Fprintf(buf, "%s%s.vm.provider :%s do |vb|\n", indent, v, ProviderName)
		writeSection(buf, p.settings, "vb", indent+"  ")
		for _, args := range p.customizations {
			fmt.Fprintf(buf, "%s  vb.customize %s\n", indent, rubyLiteral(args))
		}
		fmt.Fprintf(buf, "%send\n", indent)
	}

	for _, m := range c.machines {
		name := identifier(m.Name)
		fmt.Fprintf(buf, "\n%s%s.vm.define %s do |%s|\n", indent, v, rubyString(m.Name), name)
		writeConfig(buf, m.Config, name, indent+"  ")
		fmt.Fprintf(buf, "%send\n", indent)
	}
}

func writeSection(buf *bytes.Buffer, s *Section, prefix, indent string) {
	_ = s.values.Each(func(key string, value any) error {
		fmt.Fprintf(buf, "%s%s.%s = %s\n", indent, prefix, key, rubyLiteral(value))
		return nil
	})
}

var rubyIdent = regexp.MustCompile(`^[a-z_][a-zA-Z0-9_]*$`)

// identifier turns a machine name into a block variable name.
func identifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	id := b.String()
	if !rubyIdent.MatchString(id) {
		id = "m_" + id
	}
	if id == "config" || id == "m_" {
		id = "machine"
	}
	return id
}

// keywordArgs renders options as ", key: value, ..." for a method call.
func keywordArgs(m *opts.Map) string {
	if m.Len() == 0 {
		return ""
	}
	return ", " + hashBody(m)
}

// hashBody renders every key as a symbol. Keys that are not plain
// identifiers use the quoted form, "mount-options": v.
func hashBody(m *opts.Map) string {
	parts := make([]string, 0, m.Len())
	_ = m.Each(func(k string, v any) error {
		key := k
		if !rubyIdent.MatchString(k) {
			key = rubyString(k)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", key, rubyLiteral(v)))
		return nil
	})
	return strings.Join(parts, ", ")
}

func rubyLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case string:
		return rubyString(val)
	case configure.Symbol:
		return ":" + string(val)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = rubyLiteral(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *opts.Map:
		if val.Len() == 0 {
			return "{}"
		}
		return "{ " + hashBody(val) + " }"
	default:
		return rubyString(fmt.Sprint(val))
	}
}

// rubyString quotes s as a double-quoted Ruby string with interpolation
// sequences escaped.
func rubyString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '#':
			if i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '$' || s[i+1] == '@') {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
