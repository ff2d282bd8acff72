package main

import "github.com/nfrund/guestmap/cmd/guestmap-cli/cmd"

func main() {
	cmd.Execute()
}
