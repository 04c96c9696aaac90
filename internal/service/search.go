package service

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
)

// namePhone identifies a contact entry for deduplication purposes.
type namePhone struct {
	name  string
	phone string
}

// likeEscaper neutralizes the LIKE metacharacters so that a free-text query
// such as "100%" or "Jo_n" matches names literally instead of acting as a
// wildcard pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchContacts responds with the ranked list of contacts matching the
// 'query' URL parameter. Contacts whose name starts with the query come first,
// followed by contacts whose name merely contains it; both groups are sorted
// by name. Contacts whose phone number equals the query are appended at the
// end unless they already appear in the name-based groups. Every result
// carries the spam likelihood of its phone number, and the email of the
// owning account where the privacy check allows it.
//
// Example REST API calls:
//
//	> curl "http://localhost:8080/search?query=John" --header "Authorization: Bearer $TOKEN"
//	> curl "http://localhost:8080/search?query=5551234567" --header "Authorization: Bearer $TOKEN"
func searchContacts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required."})
		return
	}
	requester := currentAccount(c)
	lowered := likeEscaper.Replace(strings.ToLower(query))

	var prefixMatches []model.Contact
	if err := selectByNamePrefix.Select(&prefixMatches, lowered+"%"); err != nil {
		internalError(c, err)
		return
	}
	var containsMatches []model.Contact
	if err := selectByNameContains.Select(&containsMatches, "%"+lowered+"%", lowered+"%"); err != nil {
		internalError(c, err)
		return
	}

	// Prefix matches always rank above pure-substring matches. Within each
	// group the statements already sorted by name. Equal (name, phone) pairs
	// may be stored by several owners and must surface only once.
	results := []model.SearchResult{}
	seen := make(map[namePhone]bool)
	for _, contact := range append(prefixMatches, containsMatches...) {
		pair := namePhone{contact.Name, contact.PhoneNumber}
		if seen[pair] {
			continue
		}
		result, err := buildSearchResult(contact, requester)
		if err != nil {
			internalError(c, err)
			return
		}
		results = append(results, result)
		seen[pair] = true
	}

	// Searching by number: exact phone matches are appended in encounter
	// order, never re-sorted into the name-based groups.
	var phoneMatches []model.Contact
	if err := selectByPhoneExact.Select(&phoneMatches, query); err != nil {
		internalError(c, err)
		return
	}
	for _, contact := range phoneMatches {
		pair := namePhone{contact.Name, contact.PhoneNumber}
		if seen[pair] {
			continue
		}
		result, err := buildSearchResult(contact, requester)
		if err != nil {
			internalError(c, err)
			return
		}
		results = append(results, result)
		seen[pair] = true
	}

	c.IndentedJSON(http.StatusOK, results)
}

// buildSearchResult attaches the spam likelihood and the privacy-gated email
// to a matched contact.
func buildSearchResult(contact model.Contact, requester model.Account) (model.SearchResult, error) {
	likelihood, err := spamLikelihood(contact.PhoneNumber)
	if err != nil {
		return model.SearchResult{}, err
	}
	email, err := disclosableEmail(contact, requester)
	if err != nil {
		return model.SearchResult{}, err
	}
	return model.SearchResult{
		Name:           contact.Name,
		PhoneNumber:    contact.PhoneNumber,
		SpamLikelihood: likelihood,
		Email:          email,
	}, nil
}

// spamLikelihood returns the stored likelihood of the phone number, or the
// default for numbers that were never marked.
func spamLikelihood(phone string) (float64, error) {
	var record model.SpamRecord
	err := selectSpamByPhone.Get(&record, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultSpamLikelihood, nil
	}
	if err != nil {
		return 0, err
	}
	return record.SpamLikelihood, nil
}

// disclosableEmail returns the email of the account owning the matched
// contact, but only if the requester's own contact list holds an entry with
// the same name and phone number. In all other cases the email stays hidden.
func disclosableEmail(contact model.Contact, requester model.Account) (*string, error) {
	var email sql.NullString
	err := selectOwnerEmail.Get(&email,
		contact.OwnerId, requester.Id, contact.Name, contact.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !email.Valid {
		return nil, nil
	}
	return &email.String, nil
}
