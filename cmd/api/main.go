// Command api runs the book catalog service.
//
//	api serve                  # HTTP API (default)
//	api migrate                # create or update the SQL schema
//	api seed                   # insert the starter books into an empty catalog
//	api consume-events         # write catalog events from the broker to the audit log
//
// Every command accepts --config; environment variables prefixed with
// CATALOG_ override the file (see internal/infrastructure/config).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
