// Command devtoken prints a bearer token for calling the API locally.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"tourtrack/internal/auth"
	"tourtrack/internal/config"
)

func main() {
	userID := flag.Int64("id", 0, "user id to issue the token for")
	userType := flag.String("type", "tourist", `user type, "tourist" or "Tour Guide"`)
	email := flag.String("email", "", "optional email claim")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: devtoken -id <user id> [-type \"Tour Guide\"] [-email addr]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	token, err := auth.IssueToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, *userID, *email, *userType, cfg.Auth.TokenTTL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to sign token")
	}

	fmt.Println(token)
}
