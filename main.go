package main

import "timingcfg/cmd"

func main() {
	cmd.Execute()
}
