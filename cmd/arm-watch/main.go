package main

import "github.com/oshokin/arm-toggle/cmd/arm-watch/cmd"

func main() {
	cmd.Execute()
}
