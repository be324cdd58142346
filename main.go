package main

import "github.com/schovi/ptyprobe/cmd"

func main() {
	cmd.Execute()
}
