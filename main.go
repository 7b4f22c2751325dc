package main

import "github.com/omnivector-solutions/license-manager-sub000/cmd"

func main() {
	cmd.Execute()
}
