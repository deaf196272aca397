package main

import (
	"os"

	"github.com/osvaldoandrade/treesync/pkg/treesync"
)

func main() {
	os.Exit(treesync.Execute())
}
