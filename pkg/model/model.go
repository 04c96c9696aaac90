// Package model declares the wire-level types of the directory service REST
// API for use by external clients.
package model

// RegisterRequest is the body of POST /register. Email is optional.
type RegisterRequest struct {
	Username    string  `json:"username"`
	PhoneNumber string  `json:"phone_number"`
	Password    string  `json:"password"`
	Email       *string `json:"email,omitempty"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the answer to a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ContactRequest is the body of POST /contacts. Omitted fields fall back to
// placeholder values on the server.
type ContactRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// MarkSpamRequest is the body of POST /mark_spam.
type MarkSpamRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// SpamData is the data part of the answer to POST /mark_spam.
type SpamData struct {
	PhoneNumber    string  `json:"phone_number"`
	MarkedBy       int64   `json:"marked_by"`
	MarkedCount    int64   `json:"marked_count"`
	SpamLikelihood float64 `json:"spam_likelihood"`
}

// SearchResult is one element of the answer to GET /search.
type SearchResult struct {
	Name           string  `json:"name"`
	PhoneNumber    string  `json:"phone_number"`
	SpamLikelihood float64 `json:"spam_likelihood"`
	Email          *string `json:"email"`
}
