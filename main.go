package main

import "github.com/TIrth999999/Cinemas/cmd"

func main() {
	cmd.Execute()
}
