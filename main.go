package main

import (
	"github.com/0xPolygon/relay-aggregator/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
