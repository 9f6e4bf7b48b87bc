package main

import (
	"log"

	transport "schoolcomm/internal/transport/http"
)

func main() {
	if err := transport.Run(); err != nil {
		log.Fatalf("[Server] Fatal: %v", err)
	}
}
