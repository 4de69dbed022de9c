// Command dfgdemo exercises the discrete factor graph engine against
// scenarios built directly in Go, without parsing any external
// specification file: "infer" runs the sum-product/max-product
// scenarios (a binary chain, or a single four-state variable), and
// "learn" runs EM until convergence over a small RowNorm re-estimation
// example.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
