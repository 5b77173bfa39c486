package main

import "github.com/bomlens/bomlens/cmd"

func main() {
	cmd.Execute()
}
