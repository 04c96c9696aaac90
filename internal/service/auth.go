package service

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// accountKey is the gin context key under which the authenticated account is
// stored by the authRequired middleware.
const accountKey = "account"

// hashPassword derives a bcrypt hash from the cleartext password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword returns true if the cleartext password matches the stored hash.
func checkPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// issueToken creates a signed bearer token for the given username.
func issueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWTExpiryHours) * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseToken verifies the signed bearer token and returns the username it was
// issued for.
func parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// findAccountByUsername loads the account with the given username. It returns
// sql.ErrNoRows if no such account is registered.
func findAccountByUsername(username string) (model.Account, error) {
	var account model.Account
	err := selectAccountByUsername.Get(&account, username)
	return account, err
}

// authRequired is a middleware that rejects requests without a valid bearer
// token. On success the authenticated account is stored in the request context.
func authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	username, err := parseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	account, err := findAccountByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.Set(accountKey, account)
	c.Next()
}

// currentAccount returns the account that the authRequired middleware stored
// in the request context.
func currentAccount(c *gin.Context) model.Account {
	return c.MustGet(accountKey).(model.Account)
}
