package main

import "github.com/theirongolddev/wattboard/cmd"

func main() {
	cmd.Execute()
}
