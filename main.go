package main

import "github.com/Fepozopo/ditherforge/pkg/cli"

func main() {
	cli.RunCLI()
}
