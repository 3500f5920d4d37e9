package main

import (
	_ "evdealer/docs"
	"evdealer/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           EV Dealer API
// @version         1.0
// @description     Dealership purchase core: catalog, quotations, orders and payments backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
