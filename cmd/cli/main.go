package main

import (
	"fmt"
	"os"

	"github.com/avilov/bookshelf/cmd/cli/auth"
	"github.com/avilov/bookshelf/cmd/cli/books"
	"github.com/avilov/bookshelf/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	books.InitBooks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
