package main

import (
	"log"

	"github.com/auriko/image-vault/cmd"
	"github.com/auriko/image-vault/config"
)

func main() {
	log.Printf("image vault %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
