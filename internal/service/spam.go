package service

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/directory-service/internal/model"
)

// defaultSpamLikelihood is reported for phone numbers without a spam record.
const defaultSpamLikelihood = 0.1

// markSpam flags the submitted phone number as spam on behalf of the
// authenticated account. The first mark of a number creates its spam record
// with a count of 1; every further mark increments the count and recomputes
// the likelihood as min(1.0, 0.1*count). The response carries the resulting
// record, with status CREATED for a first mark and OK for an increment.
//
// Example REST API call:
//
//	> curl http://localhost:8080/mark_spam --request "POST" --include --header "Authorization: Bearer $TOKEN" --header "Content-Type: application/json" --data '{"phone_number": "+1234567890"}'
func markSpam(c *gin.Context) {
	var submitted struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if submitted.PhoneNumber == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "Phone number is required to mark as spam."})
		return
	}
	if !validPhoneNumber(submitted.PhoneNumber) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"phone_number": phoneNumberMessage})
		return
	}

	account := currentAccount(c)
	result, err := upsertSpamMark.Exec(submitted.PhoneNumber, account.Id)
	if err != nil {
		internalError(c, err)
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		internalError(c, err)
		return
	}

	var record model.SpamRecord
	if err := selectSpamByPhone.Get(&record, submitted.PhoneNumber); err != nil {
		internalError(c, err)
		return
	}

	// MySQL reports 1 affected row for a fresh insert and 2 when the upsert
	// took the update branch.
	status := http.StatusOK
	if rowsAffected == 1 {
		status = http.StatusCreated
	}
	c.IndentedJSON(status, gin.H{
		"message": fmt.Sprintf("Phone number %s marked as spam.", submitted.PhoneNumber),
		"data":    record,
	})
}
