package main

import "tastebook-backend/cmd"

func main() {
	cmd.Execute()
}
