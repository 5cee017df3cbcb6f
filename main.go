package main

import "github.com/petnolja/petcli/cmd"

func main() {
	cmd.Execute()
}
