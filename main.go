package main

import "github.com/aaearon/otpz/cmd"

func main() {
	cmd.Execute()
}
