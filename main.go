package main

import "scriptplay/cmd"

func main() {
	cmd.Execute()
}
