// Package grammars provides embedded Prism language definitions.
package grammars

import (
	_ "embed"
	"sort"
)

// RISCV is the Prism grammar for RISC-V assembly.
//
//go:embed prism-riscv.js
var RISCV string

var builtin = map[string]string{
	"riscv": RISCV,
}

// Lookup returns the embedded grammar for a Prism language id.
func Lookup(language string) (string, bool) {
	g, ok := builtin[language]
	return g, ok
}

// Languages lists the embedded language ids.
func Languages() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
