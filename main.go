package main

import "github.com/sarchlab/csim/cmd"

func main() {
	cmd.Execute()
}
