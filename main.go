package main

import "cyberx/cli"

func main() {
	cli.Execute()
}
