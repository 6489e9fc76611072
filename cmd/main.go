package main

import (
	"log"

	"github.com/clubmsg/backend/cmd/app"
	"github.com/clubmsg/backend/internal/adapters/config"
)

func main() {
	cfg := config.Get()

	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Start()
}
