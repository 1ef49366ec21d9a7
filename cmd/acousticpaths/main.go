// Command acousticpaths is a thin demonstration harness over the acoustics
// façade: it loads a YAML scene description and prints the specular
// reflection paths, beam-tree visualization records, or query metrics for
// it. It is not part of the core computation (§6: "a single programmatic
// surface, not a CLI"), the way the teacher's venture binary is a build
// tool layered over its own library packages.
package main

import "log"

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
