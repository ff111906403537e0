// This is a **mock authentication service**, standing in for the hosted auth
// provider: it exchanges an email for a signed bearer token the start-form
// API accepts. The profile row itself is written by the API at signup.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gartstein/crewstart/internal/crew/auth"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT
)

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler mints a JWT with the posted email as subject.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}

	token, err := auth.GenerateToken(req.Email, signingSecret())
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		http.Error(w, "failed to encode token", http.StatusInternalServerError)
	}
}

func signingSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return defaultSecret
}

func main() {
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Authentication service running on port %s", defaultPort)
	log.Fatal(http.ListenAndServe(":"+defaultPort, nil))
}
