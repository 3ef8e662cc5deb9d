// main package for pintrace command-line tool
// Package main is the entry point for the pintrace CLI.
package main

import "pintrace.dev/pkg/pintrace/cmd"

func main() {
	cmd.Execute()
}
