// cmd/genhash prints the stored hash for a password, for manual fixes in the
// employees table. Usage: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"github.com/MartinOstios/backend-posco/internal/security"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	h, err := security.HashPassword(os.Args[1])
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
