// The hashgen command prints the digest for a password using the same
// PBKDF2 parameters as the server. Accounts can only be promoted to admin
// directly in the database, so operators need a way to produce matching
// digests by hand.
package main

import (
	"flag"
	"fmt"
	"os"

	"tradegate/internal/service/auth"
)

func main() {
	pepper := flag.String("pepper", os.Getenv("TRADEGATE_AUTH_PASSWORD_PEPPER"),
		"password pepper, must match the server's")
	iterations := flag.Int("iterations", 0,
		"PBKDF2 iteration count, 0 uses the server default")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashgen [-pepper value] [-iterations n] <password>")
		os.Exit(2)
	}

	hasher := auth.NewPasswordHasher(*pepper, *iterations)
	fmt.Println(hasher.Hash(flag.Arg(0)))
}
