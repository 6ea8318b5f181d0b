// Package main provides the bessel CLI: evaluate and differentiate the
// exponentially scaled modified Bessel function, and summarize metric
// streams.
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bessel:", err)
		os.Exit(1)
	}
}
