package main

import "github.com/xvierd/ignite-timer/cmd"

func main() {
	cmd.Execute()
}
