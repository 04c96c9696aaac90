package service

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/directory-service/internal/config"
)

// db is a handle to the database.
var db *sqlx.DB

// cfg holds the service configuration as passed to SetupDatabaseWrapper.
var cfg config.Config

// logger writes structured records about unexpected failures.
var logger = slog.Default()

// insertAccount is a prepared statement for creating an account on the database.
var insertAccount *sqlx.NamedStmt

// selectAccountByUsername is a prepared statement for looking up an account by
// its unique username. It is executed on every authenticated request.
var selectAccountByUsername *sqlx.Stmt

// insertContact is a prepared statement for creating a contact on the database.
var insertContact *sqlx.NamedStmt

// selectByNamePrefix is a prepared statement for finding contacts whose name
// starts with the query, case-insensitively, in ascending name order.
var selectByNamePrefix *sqlx.Stmt

// selectByNameContains is a prepared statement for finding contacts whose name
// contains the query but does not start with it, case-insensitively, in
// ascending name order.
var selectByNameContains *sqlx.Stmt

// selectByPhoneExact is a prepared statement for finding contacts whose phone
// number equals the query, in insertion order.
var selectByPhoneExact *sqlx.Stmt

// selectSpamByPhone is a prepared statement for reading the spam record of a
// phone number.
var selectSpamByPhone *sqlx.Stmt

// upsertSpamMark is a prepared statement that applies a spam mark in a single
// atomic statement. Creating the record and incrementing an existing one go
// through the same upsert, so concurrent marks of one number serialize on the
// row and never lose an update. The likelihood is recomputed from the count
// inside the statement. MySQL reports 1 affected row for an insert and 2 for
// an update, which tells the caller whether the record was created.
var upsertSpamMark *sqlx.Stmt

// selectOwnerEmail is a prepared statement for the privacy check of the search
// endpoint: it returns the owning account's email only if the requesting
// account holds a contact entry with the same name and phone number.
var selectOwnerEmail *sqlx.Stmt

// CreateDatabase initializes and returns a database connection based on the
// specified configuration.
func CreateDatabase(c config.Config) *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		c.DBUser, c.DBPwd, c.DBHost, c.DBName)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	return sqlDB
}

// SetupDatabaseWrapper initializes the sqlx database wrapper with the specified
// sql database and configuration. It then prepares all statements. The database
// argument can be a real database for production use or a mock database within
// unit tests.
func SetupDatabaseWrapper(sqlDB *sql.DB, c config.Config) {
	var err error
	cfg = c
	db = sqlx.NewDb(sqlDB, "mysql")

	// Prepared statements offer a significant speed increase if executed many times.
	insertAccount, err = db.PrepareNamed(`
		INSERT INTO accounts (username, phone_number, email, password_hash)
		VALUES (:username, :phone_number, :email, :password_hash)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectAccountByUsername, err = db.Preparex(`
		SELECT * FROM accounts WHERE username = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	insertContact, err = db.PrepareNamed(`
		INSERT INTO contacts (owner_id, name, phone_number)
		VALUES (:owner_id, :name, :phone_number)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectByNamePrefix, err = db.Preparex(`
		SELECT id, owner_id, name, phone_number FROM contacts
		WHERE LOWER(name) LIKE ?
		ORDER BY name ASC
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectByNameContains, err = db.Preparex(`
		SELECT id, owner_id, name, phone_number FROM contacts
		WHERE LOWER(name) LIKE ? AND LOWER(name) NOT LIKE ?
		ORDER BY name ASC
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectByPhoneExact, err = db.Preparex(`
		SELECT id, owner_id, name, phone_number FROM contacts
		WHERE phone_number = ?
		ORDER BY id ASC
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectSpamByPhone, err = db.Preparex(`
		SELECT * FROM spam_numbers WHERE phone_number = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	upsertSpamMark, err = db.Preparex(`
		INSERT INTO spam_numbers (phone_number, marked_by, marked_count, spam_likelihood)
		VALUES (?, ?, 1, 0.1)
		ON DUPLICATE KEY UPDATE
			marked_count = marked_count + 1,
			spam_likelihood = LEAST(1.0, marked_count * 0.1),
			marked_by = VALUES(marked_by)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectOwnerEmail, err = db.Preparex(`
		SELECT a.email FROM accounts a
		WHERE a.id = ?
			AND EXISTS (
				SELECT 1 FROM contacts c
				WHERE c.owner_id = ? AND c.name = ? AND c.phone_number = ?
			)
	`)
	if err != nil {
		log.Fatal(err)
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(cfg.GinLogging, "off") {
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.POST("/register", registerAccount)
	router.POST("/login", login)
	router.GET("/healthz", healthz)

	authenticated := router.Group("/", authRequired)
	authenticated.GET("/profile", getProfile)
	authenticated.PATCH("/profile", updateProfile)
	authenticated.GET("/contacts", listContacts)
	authenticated.POST("/contacts", createContact)
	authenticated.POST("/mark_spam", markSpam)
	authenticated.GET("/search", searchContacts)
	return router
}

// healthz reports whether the service is up. It is not authenticated so that
// deployment tooling can poll it.
func healthz(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"message": "ok"})
}

// internalError logs an unexpected failure with its request context and
// answers with a generic INTERNAL SERVER ERROR. Details never reach the caller.
func internalError(c *gin.Context, err error) {
	logger.Error("unexpected failure", "error", err, "method", c.Request.Method, "path", c.FullPath())
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		gin.H{"error": "An unexpected error occurred. Please try again later."})
}
