//go:build mage

// Package main provides build targets for docpatch using Mage.
//
// Usage:
//
//	mage build    Compile docpatch to bin/
//	mage test     Run all tests
//	mage lint     Run golangci-lint
//	mage patch    Run every patch step against $DOCS_ROOT (default: .)
//	mage clean    Remove build artifacts
//	mage install  Install docpatch to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "docpatch"
	binaryDir  = "bin"
	cmdDir     = "./cmd/docpatch"
)

// Build compiles the docpatch binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	return sh.RunV("go", "build", "-v",
		"-ldflags", "-X main.version="+version,
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Patch builds docpatch and runs all steps against the built book in $DOCS_ROOT.
func Patch() error {
	mg.Deps(Build)
	root := os.Getenv("DOCS_ROOT")
	if root == "" {
		root = "."
	}
	return sh.RunV(filepath.Join(binaryDir, binaryName), "all", "--root", root)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
