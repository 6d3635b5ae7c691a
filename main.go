package main

import "github.com/khanhnv2901/laberator-checker/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
