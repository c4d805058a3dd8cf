// Command calc runs the demonstration calculator on top of the glot
// shell: a REPL with history and line editing, batch execution of files,
// and the full diagnostic pipeline.
//
// Usage:
//
//	calc [options] [file ...]
//	calc -l prelude.calc
//	calc --trace-eval --verbosity 3
package main

import (
	"glot/internal/calc"
	"glot/shell"
)

func main() {
	shell.Run(calc.New())
}
