package main

import "github.com/rekabot/rekabot/cmd"

func main() {
	cmd.Execute()
}
