package main

import "github.com/gpp-woo/publicationbank/cmd"

func main() {
	cmd.Execute()
}
