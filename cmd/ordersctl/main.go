// Command ordersctl lets a restaurant owner log in, list enriched orders and
// move orders along from a terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
