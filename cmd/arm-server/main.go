package main

import "github.com/oshokin/arm-toggle/cmd/arm-server/cmd"

func main() {
	cmd.Execute()
}
