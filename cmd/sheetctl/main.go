package main

import "github.com/jacentio/sheetstore/cmd/sheetctl/cmd"

func main() {
	cmd.Execute()
}
