// Package main is the entry point for the dashgen CLI tool.
package main

import (
	"github.com/dashkite/dashgen/internal/cmd"
)

func main() {
	cmd.Execute()
}
