package main

import "github.com/akintayo/reservation/cmd"

func main() {
	cmd.Execute()
}
