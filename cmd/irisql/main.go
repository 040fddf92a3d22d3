// Command irisql renders declarative query and table documents as IRIS or
// ANSI SQL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "irisql:", err)
		os.Exit(1)
	}
}
