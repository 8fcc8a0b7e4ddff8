package main

import "github.com/cacaolab/biotherm/cmd"

func main() {
	cmd.Execute()
}
