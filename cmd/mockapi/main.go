package main

import (
	"log"
	"os"

	"boatchat-client/internal/mockapi"
)

func main() {
	port := os.Getenv("MOCKAPI_PORT")
	if port == "" {
		port = "3000"
	}

	srv := mockapi.New()
	log.Printf("✅ Mock backend is running on http://localhost:%s", port)
	log.Fatal(srv.Listen(":" + port))
}
