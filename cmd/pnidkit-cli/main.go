package main

import "pnidkit/cmd/pnidkit-cli/cmd"

func main() {
	cmd.Execute()
}
