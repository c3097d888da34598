package main

import "productivity-tracker.com/productivity-tracker/cmd"

func main() {
	cmd.Execute()
}
