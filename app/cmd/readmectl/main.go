package main

import (
	"fmt"
	"os"

	"readmearchitect/internal/domain/entity"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Classified failures were already reported by the command.
		if _, ok := entity.AsFailure(err); !ok {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
