package main

import "github.com/sandarbhasthana/pms-app-sub005/cmd"

func main() {
	cmd.Execute()
}
