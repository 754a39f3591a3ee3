// Command simsync runs scripted sessions against the in-memory host.
package main

import "github.com/sarchlab/simsync/simsync/cmd"

func main() {
	cmd.Execute()
}
