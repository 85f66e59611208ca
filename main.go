package main

import "blitz-stats/cmd"

func main() {
	cmd.Execute()
}
