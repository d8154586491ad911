package main

import "task-dashboard/internal/cli"

func main() {
	cli.Execute()
}
