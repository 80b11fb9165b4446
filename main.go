package main

import "github.com/notargets/cardbspline/cmd"

func main() {
	cmd.Execute()
}
