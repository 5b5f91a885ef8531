// SPDX-License-Identifier: MPL-2.0

// rnplug is a release packager for Renoise tools: it bumps the version in a
// tool's manifest.xml and packs the tool into a distributable .xrnx archive.
package main

import cmd "github.com/PORTALSURFER/rls-rnplug/cmd/rnplug"

func main() {
	cmd.Execute()
}
