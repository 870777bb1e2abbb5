package main

import "github.com/frahmantamala/household-expenses/cmd"

func main() {
	cmd.Execute()
}
