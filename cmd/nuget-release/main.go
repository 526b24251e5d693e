package main

import "github.com/jimdowning-cyclops/nuget-release-go/internal/cli"

func main() {
	cli.Execute()
}
