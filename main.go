package main

import "github.com/jsphweid/scoretool/cmd"

func main() {
	cmd.Execute()
}
