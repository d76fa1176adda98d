package main

import "content-manager/cmd"

func main() {
	cmd.Execute()
}
