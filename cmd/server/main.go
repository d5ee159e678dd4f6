package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/graphmine/excavator/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML config file (overrides CONFIG_PATH)")
	flag.Parse()
	if *configPath != "" {
		os.Setenv("CONFIG_PATH", *configPath)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	router := server.NewServer().SetupRouter()

	log.Printf("Excavator API listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
