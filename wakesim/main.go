package main

import "github.com/driftlab/wakesim/wakesim/cmd"

func main() {
	cmd.Execute()
}
