package main

import "github.com/jaydifryah/UpdateBrowsers/cmd/browser-updater/cmd"

func main() {
	cmd.Execute()
}
