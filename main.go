package main

import "github.com/AlirezaBelal/linkedin-connection-remover/cmd"

func main() {
	cmd.Execute()
}
