// dbinit is a tool for one-time bootstrap of the deal pipeline MongoDB database.
package main

import (
	"github.com/dealpipeline/dbinit/cmd"
)

func main() {
	cmd.Run()
}
