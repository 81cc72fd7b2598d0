package main

import "beatmark/cmd"

func main() {
	cmd.Execute()
}
