package main

import "github.com/uiprobe/uiprobe/cmd"

func main() {
	cmd.Execute()
}
