package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// This file is a standalone prototype of the contact directory. The production
// service lives in cmd/service and internal/service.

// Contact is a directory entry shared by everybody.
type Contact struct {
	gorm.Model
	Name  string
	Phone string
}

// SpamNumber is a phone number that users have flagged, with a likelihood
// derived from how often it was flagged.
type SpamNumber struct {
	gorm.Model
	Phone       string
	MarkedCount int64
	Likelihood  float64
}

// db is a handle to the OR mapper.
var db *gorm.DB
var err error

func main() {
	setupORMapper()
	db.AutoMigrate(&Contact{}, &SpamNumber{}) // Define database schema.
	populateDatabase()
	setupHttpRouter()
}

// setupORMapper initializes the object relational mapper and the database
// connection. The connection parameters are taken from the system's
// environment variables.
//
// Usage example:
// > export HOST=localhost && export DBUSER=postgres && export DBPASSWORD=Hztju8zgf
// > go run directory-service.go
func setupORMapper() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=5432",
		os.Getenv("HOST"), os.Getenv("DBUSER"), os.Getenv("DBPASSWORD"))
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Println(err)
		panic("failed to connect to database")
	}
}

// populateDatabase enters initial test data into the database. If the data is
// already present in the table then it is not added again.
func populateDatabase() {
	initialContacts := []Contact{
		{Name: "Dirk Krummacker", Phone: "+420123456789"},
		{Name: "Pavla Krummackerova", Phone: "+420023454244"},
		{Name: "Adam Krummacker", Phone: "+420333555777"},
		{Name: "David Krummacker", Phone: "+420333555778"},
	}
	for _, contact := range initialContacts {
		var inDB []Contact
		db.Where("Name = ?", contact.Name).Find(&inDB)
		if len(inDB) == 0 {
			db.Create(&contact)
		}
	}
	initialSpamNumbers := []SpamNumber{
		{Phone: "+420999888777", MarkedCount: 8, Likelihood: 0.8},
		{Phone: "+420023454244", MarkedCount: 4, Likelihood: 0.4},
	}
	for _, spamNumber := range initialSpamNumbers {
		var inDB []SpamNumber
		db.Where("Phone = ?", spamNumber.Phone).Find(&inDB)
		if len(inDB) == 0 {
			db.Create(&spamNumber)
		}
	}
}

// setupHttpRouter initializes the REST API router and registers all endpoints.
func setupHttpRouter() {
	router := gin.Default()
	router.GET("/contacts", findAllContacts)
	router.GET("/spam", findAllSpamNumbers)
	router.Run("localhost:8080")
}

// findAllContacts responds with the list of all contacts as JSON.
func findAllContacts(c *gin.Context) {
	var contacts []Contact
	db.Find(&contacts)
	c.IndentedJSON(http.StatusOK, contacts)
}

// findAllSpamNumbers responds with the list of all flagged numbers as JSON.
func findAllSpamNumbers(c *gin.Context) {
	var spamNumbers []SpamNumber
	db.Find(&spamNumbers)
	c.IndentedJSON(http.StatusOK, spamNumbers)
}
