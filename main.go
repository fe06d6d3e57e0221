package main

import "github.com/fakeyudi/ctimer/cmd"

func main() {
	cmd.Execute()
}
