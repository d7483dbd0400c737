// SPDX-License-Identifier: MPL-2.0

package main

import cmd "faros-cli/cmd/faros"

func main() {
	cmd.Execute()
}
