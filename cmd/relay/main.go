package main

import (
	"log"

	"github.com/futig/ums-chatbot/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatal("Failed to build relay server: ", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Relay server error: ", err)
	}
}
