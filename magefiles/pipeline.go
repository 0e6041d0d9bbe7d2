//go:build mage

package main

import (
	"os"
	"os/exec"
)

// Regenerate rebuilds valid DOCX containers from mislabeled plaintext
// transcripts in the current directory.
func Regenerate() error {
	return runCLI("regenerate")
}

// Aggregate builds the NVivo corpus file from all transcripts in the
// current directory.
func Aggregate() error {
	return runCLI("aggregate", "--manifest")
}

// Test runs the full test suite.
func Test() error {
	return run("go", "test", "./...")
}

func runCLI(args ...string) error {
	cliArgs := append([]string{"run", cmdPkg}, args...)
	return run("go", cliArgs...)
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
