package main

import (
	"context"
	"log"

	"github.com/nsqlite/schooldb/internal/schooldb"
)

func main() {
	if err := schooldb.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
