// SPDX-License-Identifier: MPL-2.0

package main

import cmd "gfxprobe/cmd/gfxprobe"

func main() {
	cmd.Execute()
}
