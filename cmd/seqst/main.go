package main

import (
	"fmt"
	"os"

	"github.com/seqeron/go-suffixtree/cmd/seqst/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seqst:", err)
		os.Exit(1)
	}
}
