package main

import "github.com/devbush/ytgrab/internal/adapters/cli"

func main() {
	cli.Execute()
}
