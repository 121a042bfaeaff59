package main

import (
	"errors"
	"os"

	"github.com/vxst/dedup/cmd"
	"github.com/vxst/dedup/internal"
)

var logger = internal.GetLogger("dedup_main")

func main() {
	err := cmd.Main(os.Args)
	if errors.Is(err, internal.ErrUsage) {
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal(err)
	}
}
