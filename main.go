package main

import "github.com/chukul/assumectl/cmd"

func main() {
	cmd.Execute()
}
