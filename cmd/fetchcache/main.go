// Fetchcache runs a scripted approval session through the read-through
// request cache, or serves the approval API for such sessions with -serve.
package main

import (
	"flag"
	"fmt"
	"os"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	serve := flag.Bool("serve", false, "serve the approval API over HTTP instead of running a session")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("fetchcache", version)
		os.Exit(0)
	}

	if err := run(*configPath, *serve); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
