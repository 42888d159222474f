package main

import (
	"log"

	"github.com/pickhacks/portal/cmd/portal"
	"github.com/pickhacks/portal/internal/adapters/config"
	"github.com/pickhacks/portal/internal/adapters/controller/http/setup"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	p, err := portal.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setup.Setup(p)

	p.Start()
}
