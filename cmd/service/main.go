package main

import (
	"fmt"
	"strconv"

	"gitlab.com/dirk.krummacker/directory-service/internal/config"
	"gitlab.com/dirk.krummacker/directory-service/internal/service"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 JWT_SECRET=changeme GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("could not load configuration", err)
		panic(err)
	}
	sqlDB := service.CreateDatabase(cfg)
	service.SetupDatabaseWrapper(sqlDB, cfg)
	router := service.SetupHttpRouter()
	router.Run(":" + strconv.Itoa(cfg.Port))
}
