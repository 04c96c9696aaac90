package service

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for a violated unique key.
const mysqlDuplicateEntry = 1062

// registerAccount creates a new account from the request's JSON. The username
// and the phone number must not be taken by any existing account.
//
// Example REST API call:
//
//	> curl http://localhost:8080/register --request "POST" --include --header "Content-Type: application/json" --data '{"username": "erika", "phone_number": "+491234567890", "password": "wonderful-password", "email": "erika@example.com"}'
func registerAccount(c *gin.Context) {
	var submitted struct {
		Username    string  `json:"username"`
		PhoneNumber string  `json:"phone_number"`
		Password    string  `json:"password"`
		Email       *string `json:"email"`
	}
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	fieldErrors := gin.H{}
	if submitted.Username == "" {
		fieldErrors["username"] = "This field is required."
	}
	if submitted.PhoneNumber == "" {
		fieldErrors["phone_number"] = "This field is required."
	} else if !validPhoneNumber(submitted.PhoneNumber) {
		fieldErrors["phone_number"] = phoneNumberMessage
	}
	if submitted.Password == "" {
		fieldErrors["password"] = "This field is required."
	} else if len(submitted.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters long."
	}
	if submitted.Email != nil && !validEmail(*submitted.Email) {
		fieldErrors["email"] = "Enter a valid email address."
	}
	if len(fieldErrors) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, fieldErrors)
		return
	}

	hash, err := hashPassword(submitted.Password)
	if err != nil {
		internalError(c, err)
		return
	}
	account := model.Account{
		Username:     submitted.Username,
		PhoneNumber:  submitted.PhoneNumber,
		Email:        submitted.Email,
		PasswordHash: hash,
	}
	if _, err := insertAccount.Exec(&account); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				gin.H{"error": "A user with this phone number or username already exists."})
			return
		}
		internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

// login verifies the submitted credentials and responds with a bearer token
// for the authenticated endpoints.
//
// Example REST API call:
//
//	> curl http://localhost:8080/login --request "POST" --include --header "Content-Type: application/json" --data '{"username": "erika", "password": "wonderful-password"}'
func login(c *gin.Context) {
	var submitted struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	account, err := findAccountByUsername(submitted.Username)
	if errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	if !checkPassword(submitted.Password, account.PasswordHash) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	token, err := issueToken(account.Username)
	if err != nil {
		internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"token": token})
}

// getProfile responds with the profile of the authenticated account.
func getProfile(c *gin.Context) {
	account := currentAccount(c)
	c.IndentedJSON(http.StatusOK, gin.H{
		"username":     account.Username,
		"phone_number": account.PhoneNumber,
		"email":        account.Email,
	})
}

// updateProfile changes the email of the authenticated account and responds
// with the new version of the profile. Username and phone number are immutable;
// any other submitted fields are ignored.
func updateProfile(c *gin.Context) {
	var submitted struct {
		Email *string `json:"email"`
	}
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	// It only makes sense to continue if we have at least one value to update.
	if submitted.Email == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}
	if !validEmail(*submitted.Email) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"email": "Enter a valid email address."})
		return
	}

	account := currentAccount(c)
	if _, err := db.Exec("UPDATE accounts SET email = ? WHERE id = ?", *submitted.Email, account.Id); err != nil {
		internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"username":     account.Username,
		"phone_number": account.PhoneNumber,
		"email":        *submitted.Email,
	})
}
