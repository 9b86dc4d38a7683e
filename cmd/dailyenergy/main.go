package main

import "daily-energy/internal/cli"

func main() {
	cli.Execute()
}
