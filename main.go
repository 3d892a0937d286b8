// Command loctree scans a polyglot project and answers structural
// questions about its import/export graph.
package main

import "github.com/loctree/loctree-go/cmd"

func main() {
	cmd.Execute()
}
