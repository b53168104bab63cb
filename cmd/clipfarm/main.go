// Command clipfarm opens the desktop app without the command line layer.
// It is the target used for packaging with fyne.
package main

import "github.com/ytget/clipfarm/internal/ui"

var version = "dev"

func main() {
	ui.Run(version)
}
