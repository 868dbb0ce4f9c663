package main

import "toolbelt/cmd"

func main() {
	cmd.Execute()
}
