package main

import "github.com/pnkjpro/oathly/cmd/oathly/root"

func main() {
	root.Execute()
}
