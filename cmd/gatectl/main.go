package main

import "github.com/playcircuit/gateway/internal/cli"

func main() {
	cli.Execute()
}
