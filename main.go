package main

import "github.com/jfmyers9/lyricmatch/cmd"

func main() {
	cmd.Execute()
}
