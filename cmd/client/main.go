package main

import (
	"quizshare/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
