package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/siaksi/siaksi-api/cmd/app"
)

// @contact.name   SIAKSI Support
// @contact.email  bem@kampus.ac.id
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
