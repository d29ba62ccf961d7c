package main

import "github.com/seanlum/ManPage-Explorer/cmd"

func main() {
	cmd.Execute()
}
