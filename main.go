package main

import "github.com/frahmantamala/performance-review/cmd"

func main() {
	cmd.Execute()
}
