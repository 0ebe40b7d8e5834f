package main

import (
	"os"

	"github.com/GoCookingBlog/GoCookingBlog/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
