package main

import (
	"unipept/internal/appshell"
	"unipept/internal/tablesapp"
)

func main() { appshell.Main(tablesapp.RunContext) }
