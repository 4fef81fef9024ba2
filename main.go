package main

import (
	"treepak/cli"
)

func main() {
	cli.Start()
}
