package main

import (
	"os"

	"github.com/schmitthub/tplresolve/internal/tplresolve"
)

func main() {
	os.Exit(tplresolve.Main())
}
