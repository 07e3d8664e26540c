package main

import "github.com/campusbuddy/soc-events/internal/cli"

func main() {
	cli.Execute()
}
