package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattyshack/wlp4c/parser/lr"
)

func TestParse(t *testing.T) {
	config, err := Parse(strings.NewReader(`
grammar: wlp4.lr1
output: out.asm
verbose: true
`))
	require.NoError(t, err)

	assert.Equal(
		t,
		&Config{
			Grammar:    "wlp4.lr1",
			Output:     "out.asm",
			TreeIndent: "  ",
			Verbose:    true,
		},
		config)
}

func TestParseEmpty(t *testing.T) {
	config, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("grammer: typo.lr1\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlp4c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tree_indent: \"\"\n"), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", config.TreeIndent)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	table, err := Default().Table()
	require.NoError(t, err)

	expected, err := lr.Default()
	require.NoError(t, err)
	assert.Same(t, expected, table)

	path := filepath.Join(t.TempDir(), "wlp4.lr1")
	file, err := os.Create(path)
	require.NoError(t, err)
	_, err = table.WriteTo(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	config := Default()
	config.Grammar = path
	loaded, err := config.Table()
	require.NoError(t, err)
	assert.Equal(t, len(table.Productions), len(loaded.Productions))
}
