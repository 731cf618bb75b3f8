package main

import (
	"unipept/internal/appshell"
	"unipept/internal/loadapp"
)

func main() { appshell.Main(loadapp.RunContext) }
