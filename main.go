package main

import "github.com/rafael/dmterm/internal/commands"

func main() {
	commands.Execute()
}
