package main

import "github.com/josephlewis42/mash/cmd"

func main() {
	cmd.Execute()
}
