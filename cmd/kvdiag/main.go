// Command kvdiag runs a battery of health checks against a local
// key-value store node and exits with a monitoring-plugin status code:
// 0 ok, 1 warning, 2 critical, 3 unknown.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
