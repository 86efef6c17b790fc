package main

import (
	"context"
	"log"

	"github.com/Apurer/shop-backoffice/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("back-office API exited: %v", err)
	}
}
