package main

import "github.com/NodleCode/PKI/internal/cli"

func main() {
	cli.Execute()
}
