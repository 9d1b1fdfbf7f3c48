package main

import "github.com/eslsoft/lingodesk/cmd"

func main() {
	cmd.Execute()
}
