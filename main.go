package main

import "github.com/oceanmesh/omt/cmd"

func main() {
	cmd.Execute()
}
