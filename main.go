package main

import "github.com/hb-chen/safeskill/cmd"

func main() {
	cmd.Execute()
}
