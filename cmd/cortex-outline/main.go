package main

import "github.com/mvp-joe/cortex-outline/internal/cli"

func main() {
	cli.Execute()
}
