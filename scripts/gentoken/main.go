// prints a JWT for one of the development accounts, for use with
// `portal probe --token`
package main

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/auth"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	userID := "u-employee"
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}

	user, err := users.NewSeededRepository().FindByID(userID)
	if err != nil {
		log.Fatalf("Unknown development account %q: %v", userID, err)
	}

	identity := auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	if user.Company != nil {
		identity.CompanyEmail = user.Company.Email
	}

	token, err := auth.GenerateJWT(identity)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("Token for %s (%s):\n%s\n\n", user.Email, user.Role, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
