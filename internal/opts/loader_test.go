package opts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		baseDir  string
		override string
		want     string
	}{
		{
			name:    "default filename",
			baseDir: "/project",
			want:    "/project/opts.yaml",
		},
		{
			name:     "relative override",
			baseDir:  "/project",
			override: "config/dev.yaml",
			want:     "/project/config/dev.yaml",
		},
		{
			name:     "absolute override",
			baseDir:  "/project",
			override: "/etc/vms.yaml",
			want:     "/etc/vms.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.baseDir, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("reads default opts.yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "opts.yaml", "vm:\n  box: ubuntu/focal64\n  name: dev\n")

		doc, err := Load(dir, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "opts.yaml"), doc.Path)

		vm, ok := doc.VM()
		require.True(t, ok)
		box, ok := vm.(*Map).Get("box")
		require.True(t, ok)
		assert.Equal(t, "ubuntu/focal64", box)

		_, ok = doc.VMs()
		assert.False(t, ok)
	})

	t.Run("uses override path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "envs/staging.yaml", "vms:\n  web:\n    box: a\n")

		doc, err := Load(dir, "envs/staging.yaml")
		require.NoError(t, err)
		_, ok := doc.VMs()
		assert.True(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Load(dir, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingOptionsFile)
		assert.Contains(t, err.Error(), filepath.Join(dir, "opts.yaml"))
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "opts.yaml", "vm: [box: \n  - :\n")

		_, err := Load(dir, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedOptions)
	})

	t.Run("top level must be a mapping", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "opts.yaml", "- box: a\n")

		_, err := Load(dir, "")
		assert.ErrorIs(t, err, ErrMalformedOptions)
	})

	t.Run("empty file is an empty document", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "opts.yaml", "")

		doc, err := Load(dir, "")
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Root.Len())
	})
}

func TestParsePreservesOrder(t *testing.T) {
	root, err := Parse([]byte(`
vms:
  zeta:
    box: z
  alpha:
    box: a
  mid:
    box: m
`))
	require.NoError(t, err)

	vms, ok := root.Get("vms")
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, vms.(*Map).Keys())
}

func TestParseScalarsAndNulls(t *testing.T) {
	root, err := Parse([]byte(`
memory: 2048
ratio: 0.5
gui: true
name: dev
hostname: ~
ports: [80, 443]
`))
	require.NoError(t, err)

	v, _ := root.Get("memory")
	assert.Equal(t, 2048, v)
	v, _ = root.Get("ratio")
	assert.Equal(t, 0.5, v)
	v, _ = root.Get("gui")
	assert.Equal(t, true, v)
	v, _ = root.Get("name")
	assert.Equal(t, "dev", v)

	v, ok := root.Get("hostname")
	assert.True(t, ok, "explicit null must be present")
	assert.Nil(t, v)

	v, _ = root.Get("ports")
	assert.Equal(t, []any{80, 443}, v)
}

func TestParseAnchorsAndMerge(t *testing.T) {
	root, err := Parse([]byte(`
base: &base
  box: ubuntu/focal64
  memory: 1024
vms:
  web:
    <<: *base
    name: web
  db:
    name: db
    memory: 4096
    <<: *base
`))
	require.NoError(t, err)

	web, ok := root.Lookup("vms.web")
	require.True(t, ok)
	assert.Equal(t, []string{"box", "memory", "name"}, web.(*Map).Keys())

	mem, ok := root.Lookup("vms.db.memory")
	require.True(t, ok)
	assert.Equal(t, 4096, mem, "explicit keys win over merged ones")

	box, ok := root.Lookup("vms.db.box")
	require.True(t, ok)
	assert.Equal(t, "ubuntu/focal64", box)
}

func TestParseAliasLimits(t *testing.T) {
	t.Run("expansion budget", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
		for i := 1; i <= 6; i++ {
			fmt.Fprintf(&b, "l%d: &l%d [", i, i)
			for j := 0; j < 10; j++ {
				if j > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "*l%d", i-1)
			}
			b.WriteString("]\n")
		}

		_, err := Parse([]byte(b.String()))
		require.ErrorIs(t, err, ErrMalformedOptions)
		assert.Contains(t, err.Error(), "aliases expand to more than")
	})

	t.Run("anchor containing itself", func(t *testing.T) {
		_, err := Parse([]byte("a: &a [1, *a]\n"))
		require.ErrorIs(t, err, ErrMalformedOptions)
		assert.Contains(t, err.Error(), "contains itself")
	})

	t.Run("repeated small alias is fine", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("base: &base {box: a, memory: 1024}\nvms:\n")
		for i := 0; i < 200; i++ {
			fmt.Fprintf(&b, "  vm%d: {<<: *base, name: vm%d}\n", i, i)
		}

		root, err := Parse([]byte(b.String()))
		require.NoError(t, err)
		box, ok := root.Lookup("vms.vm199.box")
		require.True(t, ok)
		assert.Equal(t, "a", box)
	})
}
