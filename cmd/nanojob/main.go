package main

import (
	"github.com/NVIDIA/nanojob/pkg/cli"
)

func main() {
	cli.Execute()
}
