package main

import (
	"fmt"
	"net/http"
	"time"

	"gitlab.com/dirk.krummacker/directory-service/internal/config"
)

// Usage example on the command line:
// > PORT=8080 go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("could not load configuration", err)
		panic(err)
	}
	healthURL := fmt.Sprintf("http://localhost:%d/healthz", cfg.Port)

	totalWaitTime := 0
	for {
		res, err := http.Get(healthURL)
		if err == nil {
			if res.StatusCode == http.StatusOK {
				fmt.Println(res)
				break
			} else {
				fmt.Println(res)
			}
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds", totalWaitTime)
		fmt.Println()
		time.Sleep(5 * time.Second)
	}
}
