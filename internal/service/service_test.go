package service

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/directory-service/internal/config"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
)

// accountColumns are the columns of the accounts table in schema order.
var accountColumns = []string{"id", "username", "phone_number", "email", "password_hash"}

// contactColumns are the columns returned by the contact select statements.
var contactColumns = []string{"id", "owner_id", "name", "phone_number"}

// spamColumns are the columns of the spam_numbers table in schema order.
var spamColumns = []string{"phone_number", "marked_by", "marked_count", "spam_likelihood"}

// testConfig returns the service configuration used within unit tests.
func testConfig() config.Config {
	return config.Config{
		GinLogging:     "off",
		JWTSecret:      "unit-test-secret",
		JWTExpiryHours: 1,
		ContactScope:   "global",
	}
}

// testAccount returns the account against which authenticated requests are
// executed within unit tests.
func testAccount() model.Account {
	email := "erika@example.com"
	return model.Account{
		Id:           7,
		Username:     "erika",
		PhoneNumber:  "+491234567890",
		Email:        &email,
		PasswordHash: "irrelevant",
	}
}

// createMockObjects builds a mock database handle and a mock object for defining our expected SQL
// calls.
func createMockObjects(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db, mock
}

// expectPreparedStatements instructs the mock object to expect that several statements are being
// prepared.
func expectPreparedStatements(mock sqlmock.Sqlmock) {
	mock.ExpectPrepare("INSERT INTO accounts")
	mock.ExpectPrepare("SELECT \\* FROM accounts WHERE username = \\?")
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("WHERE LOWER\\(name\\) LIKE \\?")
	mock.ExpectPrepare("AND LOWER\\(name\\) NOT LIKE \\?")
	mock.ExpectPrepare("WHERE phone_number = \\?")
	mock.ExpectPrepare("SELECT \\* FROM spam_numbers")
	mock.ExpectPrepare("INSERT INTO spam_numbers")
	mock.ExpectPrepare("SELECT a.email FROM accounts a")
}

// expectAccountLookup instructs the mock object to expect the account lookup
// that the authentication middleware performs on every protected request.
func expectAccountLookup(mock sqlmock.Sqlmock, account model.Account) {
	rows := mock.NewRows(accountColumns).
		AddRow(account.Id, account.Username, account.PhoneNumber, account.Email, account.PasswordHash)
	mock.ExpectQuery("SELECT \\* FROM accounts WHERE username = \\?").
		WithArgs(account.Username).
		WillReturnRows(rows)
}

// initializeDirectoryService sets up the directory service with the mock database and returns a
// handle to the gin engine against which requests can be executed.
func initializeDirectoryService(db *sql.DB) *gin.Engine {
	return initializeWithConfig(db, testConfig())
}

// initializeWithConfig sets up the directory service with the mock database
// and a custom configuration.
func initializeWithConfig(db *sql.DB, c config.Config) *gin.Engine {
	SetupDatabaseWrapper(db, c)
	gin.SetMode(gin.ReleaseMode)
	return SetupHttpRouter()
}

// serve executes the HTTP request against the router and returns the response.
// A non-empty token is passed along as bearer credential.
func serve(router *gin.Engine, method string, url string, body *strings.Reader, token string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	if body == nil {
		body = strings.NewReader("")
	}
	request, _ := http.NewRequest(method, url, body)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(recorder, request)
	return recorder
}

// runTest executes an unauthenticated HTTP request with the specified arguments and returns the
// response.
func runTest(db *sql.DB, method string, url string, body *strings.Reader) *httptest.ResponseRecorder {
	router := initializeDirectoryService(db)
	return serve(router, method, url, body, "")
}

// mustIssueToken creates a bearer token for the account or fails the test.
// The service must already be set up so that the signing key is configured.
func mustIssueToken(t *testing.T, account model.Account) string {
	token, err := issueToken(account.Username)
	if err != nil {
		t.Fatalf("could not issue token: %s", err)
	}
	return token
}
