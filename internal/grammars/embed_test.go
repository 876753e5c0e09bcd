package grammars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	g, ok := Lookup("riscv")
	require.True(t, ok)
	assert.Contains(t, g, "Prism.languages.riscv")

	_, ok = Lookup("cobol")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"riscv"}, Languages())
}
