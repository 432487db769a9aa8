// Command talentctl searches and filters candidates through a running talent-search server.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
