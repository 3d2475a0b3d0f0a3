package main

import "github.com/pfrederiksen/bis-schedules/internal/cli"

func main() {
	cli.Execute()
}
