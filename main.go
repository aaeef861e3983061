package main

import "github.com/killallgit/parley/cmd"

func main() {
	cmd.Execute()
}
