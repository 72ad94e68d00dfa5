package main

import "github.com/stevehiehn/provis/cmd"

func main() {
	cmd.Execute()
}
