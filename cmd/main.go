package main

import (
	"os"

	"github.com/futgraph/futgraph/cmd/futgraph"
)

func main() {
	if err := futgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
