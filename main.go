package main

import "github.com/moviestream/tamilblasters-indexer/cmd"

func main() {
	cmd.Execute()
}
