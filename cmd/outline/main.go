package main

import "github.com/mvp-joe/code-outline/internal/cli"

func main() {
	cli.Execute()
}
