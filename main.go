package main

import "github.com/Achintharya/eightfold-bot/cmd"

func main() {
	cmd.Execute()
}
