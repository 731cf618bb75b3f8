package main

import (
	"unipept/internal/appshell"
	"unipept/internal/lcaapp"
)

func main() { appshell.Main(lcaapp.RunContext) }
