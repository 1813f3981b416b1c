package main

import (
	"fmt"

	"cardroom-server/internal/jwt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// prints a signed admin token for use against the admin endpoints
func main() {
	_ = godotenv.Load()
	jwt.LoadKeys()

	token, err := jwt.Sign("admin")
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}

	fmt.Println(token)
}
