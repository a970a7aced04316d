// Command honeycli is the terminal client for the Honey API.
package main

import (
	"os"

	"github.com/Shallyquinn/Chatbot/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
