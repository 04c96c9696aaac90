package service

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
)

// Placeholder values for contact fields that were not submitted. They are
// applied here at the request boundary, not stored as column defaults.
const (
	placeholderName  = "Unknown"
	placeholderPhone = "0000000000"
)

// createContact inserts a contact into the personal list of the authenticated
// account. It responds with the full contact data including the newly assigned
// id. A submitted phone number must be in E.164 format; omitted fields fall
// back to placeholder values.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"name": "Hans Wurst", "phone_number": "+420123456789"}'
func createContact(c *gin.Context) {
	var submitted struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if submitted.PhoneNumber != nil && !validPhoneNumber(*submitted.PhoneNumber) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"phone_number": phoneNumberMessage})
		return
	}

	account := currentAccount(c)
	contact := model.Contact{
		OwnerId:     account.Id,
		Name:        placeholderName,
		PhoneNumber: placeholderPhone,
	}
	if submitted.Name != nil {
		contact.Name = *submitted.Name
	}
	if submitted.PhoneNumber != nil {
		contact.PhoneNumber = *submitted.PhoneNumber
	}

	// The duplicate check and the insert run in one transaction with a locking
	// read, so two concurrent creates of the same pair cannot both pass the
	// check.
	tx, err := db.Beginx()
	if err != nil {
		internalError(c, err)
		return
	}
	duplicate, err := contactExists(tx, contact)
	if err != nil {
		tx.Rollback()
		internalError(c, err)
		return
	}
	if duplicate {
		tx.Rollback()
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "A contact with this name and phone number already exists."})
		return
	}

	result, err := tx.NamedStmt(insertContact).Exec(&contact)
	if err != nil {
		tx.Rollback()
		internalError(c, err)
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		internalError(c, err)
		return
	}
	if err := tx.Commit(); err != nil {
		internalError(c, err)
		return
	}
	contact.Id = id
	c.IndentedJSON(http.StatusCreated, contact)
}

// contactExists reports whether an equal (name, phone) contact entry is
// already stored. With the "global" contact scope any account's entry counts
// as a duplicate; with the "owner" scope only entries of the same owner do.
// The FOR UPDATE read locks the matched rows, and the matched index range,
// until the surrounding transaction ends.
func contactExists(tx *sqlx.Tx, contact model.Contact) (bool, error) {
	var count int
	var err error
	if strings.EqualFold(cfg.ContactScope, "owner") {
		err = tx.Get(&count, `
			SELECT COUNT(*) FROM contacts
			WHERE owner_id = ? AND name = ? AND phone_number = ?
			FOR UPDATE`,
			contact.OwnerId, contact.Name, contact.PhoneNumber)
	} else {
		err = tx.Get(&count, `
			SELECT COUNT(*) FROM contacts
			WHERE name = ? AND phone_number = ?
			FOR UPDATE`,
			contact.Name, contact.PhoneNumber)
	}
	return count > 0, err
}

// listContacts responds with the contact list of the authenticated account,
// sorted by name.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts" --header "Authorization: Bearer $TOKEN"
func listContacts(c *gin.Context) {
	account := currentAccount(c)
	contacts := []model.Contact{}
	err := db.Select(&contacts, `
		SELECT id, owner_id, name, phone_number FROM contacts
		WHERE owner_id = ?
		ORDER BY name ASC`, account.Id)
	if err != nil {
		internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}
