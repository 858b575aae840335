package main

import "phorg/internal/cli"

func main() {
	cli.Execute()
}
