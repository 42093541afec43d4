// Command redliner is the command-line client of the AI Redliner backend:
// upload contracts and playbooks, run analyses and browse reviews.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
