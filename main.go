package main

import "github.com/theirongolddev/iodda/cmd"

func main() {
	cmd.Execute()
}
