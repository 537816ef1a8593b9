package main

import (
	"github.com/hyperhustle/hustle-go/internal/cli"
)

func main() {
	cli.Execute()
}
