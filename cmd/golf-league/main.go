package main

import "github.com/pfrederiksen/golf-league/internal/cli"

func main() {
	cli.Execute()
}
