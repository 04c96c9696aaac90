package model

// Account is a registered user of the directory. Username and phone number
// are unique and immutable after registration; the email is optional and may
// be changed later via the profile endpoint.
type Account struct {
	Id           int64   `json:"id"              db:"id"`
	Username     string  `json:"username"        db:"username"`
	PhoneNumber  string  `json:"phone_number"    db:"phone_number"`
	Email        *string `json:"email,omitempty" db:"email"`
	PasswordHash string  `json:"-"               db:"password_hash"`
}

// Contact is a single entry in an account's personal contact list.
type Contact struct {
	Id          int64  `json:"id"           db:"id"`
	OwnerId     int64  `json:"-"            db:"owner_id"`
	Name        string `json:"name"         db:"name"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
}

// SpamRecord tracks how often a phone number has been flagged as spam.
// MarkedBy is the account that performed the most recent mark. The likelihood
// is always derived from the count as min(1.0, 0.1*count) and is never
// incremented independently of it.
type SpamRecord struct {
	PhoneNumber    string  `json:"phone_number"    db:"phone_number"`
	MarkedBy       int64   `json:"marked_by"       db:"marked_by"`
	MarkedCount    int64   `json:"marked_count"    db:"marked_count"`
	SpamLikelihood float64 `json:"spam_likelihood" db:"spam_likelihood"`
}

// SearchResult is one element of the ranked sequence returned by the search
// endpoint. Email is null unless the privacy check allows disclosure.
type SearchResult struct {
	Name           string  `json:"name"`
	PhoneNumber    string  `json:"phone_number"`
	SpamLikelihood float64 `json:"spam_likelihood"`
	Email          *string `json:"email"`
}
