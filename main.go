package main

import "github.com/kozaktomas/photo-prefs/cmd"

func main() {
	cmd.Execute()
}
