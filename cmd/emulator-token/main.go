// Command emulator-token prints a bearer token accepted by the Firebase Auth
// Emulator for FIRESTORE_ADMIN_UID.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"eventfinder/internal/auth"
)

func main() {
	uid := os.Getenv("FIRESTORE_ADMIN_UID")
	if uid == "" {
		fmt.Fprintln(os.Stderr, "FIRESTORE_ADMIN_UID is not set")
		os.Exit(1)
	}
	fmt.Printf("Bearer %s\n", auth.GenerateEmulatorToken(os.Getenv("GOOGLE_CLOUD_PROJECT"), uid))
}
