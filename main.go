package main

import "github.com/oss-pulse/repo-trends/cmd"

func main() {
	cmd.Execute()
}
