package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gitlab.com/dirk.krummacker/directory-service/internal/randomgen"
	"gitlab.com/dirk.krummacker/directory-service/pkg/model"
)

const serverPort = 8080

const password = "wonderful-password"

// token is the bearer token of the account registered at startup.
var token string

// Usage example on the command line:
// > go run main.go
func main() {
	username := randomgen.Username()
	register(username)
	login(username)

	fmt.Println()
	fmt.Println("  Elements  CONTACTS    SEARCH MARK_SPAM ")
	fmt.Println("------------------------------------------")
	sizes := []int{100, 500, 1000, 5000}
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		names := make([]string, 0, loops)
		phones := make([]string, 0, loops)
		{
			// POST /contacts requests
			var duration int64
			for i := 0; i < loops; i++ {
				name := randomgen.Name()
				phone := randomgen.PhoneNumber()
				names = append(names, name)
				phones = append(phones, phone)
				body, _ := json.Marshal(model.ContactRequest{Name: &name, PhoneNumber: &phone})
				_, d := sendRequest(http.MethodPost, endpoint("/contacts"), bytes.NewReader(body))
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// GET /search requests
			var duration int64
			for _, name := range names {
				_, d := sendRequest(http.MethodGet,
					endpoint("/search")+"?query="+url.QueryEscape(name), nil)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// POST /mark_spam requests
			var duration int64
			for _, phone := range phones {
				body, _ := json.Marshal(model.MarkSpamRequest{PhoneNumber: phone})
				_, d := sendRequest(http.MethodPost, endpoint("/mark_spam"), bytes.NewReader(body))
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		fmt.Println()
	}
}

func endpoint(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", serverPort, path)
}

func register(username string) {
	body, _ := json.Marshal(model.RegisterRequest{
		Username:    username,
		PhoneNumber: randomgen.PhoneNumber(),
		Password:    password,
	})
	sendRequest(http.MethodPost, endpoint("/register"), bytes.NewReader(body))
}

func login(username string) {
	body, _ := json.Marshal(model.LoginRequest{Username: username, Password: password})
	resBody, _ := sendRequest(http.MethodPost, endpoint("/login"), bytes.NewReader(body))
	var response model.TokenResponse
	if err := json.Unmarshal(resBody, &response); err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	token = response.Token
}

func sendRequest(method string, requestURL string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
