package main

import "github.com/aryan-gupta7/track-it-v1/internal/cli"

func main() {
	cli.Execute()
}
