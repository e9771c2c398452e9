package main

import "github.com/blog-engagement-api/internal/cli"

func main() {
	cli.Execute()
}
