package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/aussiebroadwan/hiddengems/internal/directory/app"
	"github.com/aussiebroadwan/hiddengems/pkg/cryptox"
)

func main() {
	genSecret := flag.Bool("gen-secret", false, "print a random JWT_SECRET and exit")
	flag.Parse()

	if *genSecret {
		secret, err := cryptox.NewSigningSecret()
		if err != nil {
			log.Fatalf("failed to generate secret: %v", err)
		}
		fmt.Println(secret)
		return
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
