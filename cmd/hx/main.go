package main

import "habitex/cmd/hx/root"

func main() {
	root.Execute()
}
