package main

import "github.com/tranvictor/circles-groups/cmd"

func main() {
	cmd.Execute()
}
