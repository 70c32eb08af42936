package main

import (
	"os"

	"github.com/adcu-admin/adcu-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
