// Command cli runs slot searches and calendar lookups from a terminal and
// bootstraps the Google Calendar OAuth token.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
