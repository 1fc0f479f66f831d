package main

import "github.com/aidanlogic/aidanlogic/internal/cli"

func main() {
	cli.Execute()
}
