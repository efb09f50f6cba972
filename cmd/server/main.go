package main

import "github.com/Frenky19/QRkot-spreadsheets/cmd/server/cmd"

func main() {
	cmd.Execute()
}
