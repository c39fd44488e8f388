//go:build ignore

// generate_keys prints fresh credentials for a .env file and a bearer token
// signed with the new secret.
//
//	go run scripts/generate_keys.go -subject bench-3 -ttl 8h
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"log"
	"os"
	"text/template"
	"time"

	"github.com/guttosm/blend-service/internal/middleware"
)

const envTemplate = `# blend-service credentials, generated {{.Generated}}
AUTH_ENABLED=true
JWT_SECRET_KEY={{.Secret}}
# only used while JWT_SECRET_KEY is empty
API_KEYS={{.APIKey}}

# bearer token for subject {{printf "%q" .Subject}}, expires {{.Expires}}
# Authorization: Bearer {{.Token}}
`

func randomKey(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("read random bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

func main() {
	subject := flag.String("subject", "dev-lab", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()
	log.SetFlags(0)

	secret := randomKey(32)
	token, err := middleware.IssueToken([]byte(secret), *subject, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	now := time.Now().UTC()
	tmpl := template.Must(template.New("env").Parse(envTemplate))
	err = tmpl.Execute(os.Stdout, map[string]string{
		"Generated": now.Format(time.RFC3339),
		"Secret":    secret,
		"APIKey":    randomKey(24),
		"Subject":   *subject,
		"Expires":   now.Add(*ttl).Format(time.RFC3339),
		"Token":     token,
	})
	if err != nil {
		log.Fatalf("render: %v", err)
	}
}
