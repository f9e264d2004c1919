// Demo-data seeder: registers a handful of users and drives the public
// API to create posts, comments and votes.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var base = func() string {
	if b := os.Getenv("FORUM_API_URL"); b != "" {
		return b
	}
	return "http://localhost:8080"
}()

var hc = &http.Client{Timeout: 10 * time.Second}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	var tokens []string
	for i := 0; i < 5; i++ {
		email := gofakeit.Email()
		register(email, gofakeit.Name())
		tokens = append(tokens, login(email))
	}

	var postIDs []uint
	for _, tok := range tokens {
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			if id := createPost(tok); id != 0 {
				postIDs = append(postIDs, id)
			}
		}
	}

	for _, tok := range tokens {
		for _, pid := range postIDs {
			if gofakeit.Bool() {
				vote(tok, pid)
			}
			if gofakeit.Bool() {
				comment(tok, pid)
			}
		}
	}
	log.Printf("seeded %d users, %d posts", len(tokens), len(postIDs))
}

func post(path, token string, body any, out any) error {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, base+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func register(email, name string) {
	if err := post("/auth/register", "", map[string]string{
		"email": email, "password": "123456", "name": name,
	}, nil); err != nil {
		log.Printf("register %s: %v", email, err)
	}
}

func login(email string) string {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := post("/auth/login", "", map[string]string{
		"email": email, "password": "123456",
	}, &out); err != nil {
		log.Fatalf("login %s: %v", email, err)
	}
	return out.AccessToken
}

func createPost(token string) uint {
	var out struct {
		ID uint `json:"id"`
	}
	err := post("/posts", token, map[string]string{
		"title":   gofakeit.Sentence(5),
		"content": gofakeit.Paragraph(1, 3, 10, " "),
		"tag":     gofakeit.RandomString([]string{"general", "help", "showcase"}),
	}, &out)
	if err != nil {
		// Free-tier quota denials are expected once a user has 5 posts.
		log.Printf("create post: %v", err)
		return 0
	}
	return out.ID
}

func vote(token string, postID uint) {
	dir := "up"
	if gofakeit.Bool() {
		dir = "down"
	}
	if err := post(fmt.Sprintf("/posts/%d/vote", postID), token, map[string]string{"voteType": dir}, nil); err != nil {
		log.Printf("vote on %d: %v", postID, err)
	}
}

func comment(token string, postID uint) {
	if err := post(fmt.Sprintf("/posts/%d/comments", postID), token, map[string]string{
		"content": gofakeit.Sentence(8),
	}, nil); err != nil {
		log.Printf("comment on %d: %v", postID, err)
	}
}
