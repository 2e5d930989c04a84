package main

import "github.com/Bitlatte/staticblog/cmd"

func main() {
	cmd.Execute()
}
