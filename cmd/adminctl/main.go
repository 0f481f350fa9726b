package main

import "dsignme/internal/cli"

func main() {
	cli.Execute()
}
