package main

import "github.com/agentic-research/nest/cmd"

func main() {
	cmd.Execute()
}
