package main

import "github.com/oshokin/arm-toggle/cmd/arm-toggle/cmd"

func main() {
	cmd.Execute()
}
