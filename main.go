package main

import "estimate-manager/cmd"

func main() {
	cmd.Execute()
}
