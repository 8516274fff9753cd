package main

import "github.com/andrescamacho/unitforge-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
