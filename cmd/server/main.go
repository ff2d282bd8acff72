package main

import (
	"github.com/nfrund/guestmap/internal/server"
)

func main() {
	s := server.New()
	s.RegisterRoutes()
	s.Start()
}
