package main

import "github.com/riftwood/pathtracer/cmd"

func main() {
	cmd.Execute()
}
