package main

import "eventscout/cmd"

// Build is set via ldflags at build time
var Build = "dev"

func main() {
	cmd.SetBuild(Build)
	cmd.Execute()
}
