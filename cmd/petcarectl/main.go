package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/petcare/internal/admin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := admin.App().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
