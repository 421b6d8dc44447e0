package main

import (
	"log"

	"nhadat-service/internal"
)

func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("application terminated with error: %v", err)
	}
}
