package main

import "github.com/nfrund/userdash/cmd/userdash-cli/cmd"

func main() {
	cmd.Execute()
}
