package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Scene directory and S3 settings come from the environment and .env
	cfg, err := config.Load(".env", nil)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(*port, cfg.ScenesDir)

	if cfg.S3.Enabled() {
		uploader, err := storage.NewUploader(cfg.S3, log.Default())
		if err != nil {
			log.Printf("Error configuring S3 uploads: %v", err)
			os.Exit(1)
		}
		webServer.SetUploader(uploader)
		log.Printf("Completed renders will be uploaded to bucket %s", cfg.S3.Bucket)
	}

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
