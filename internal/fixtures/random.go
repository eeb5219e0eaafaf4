package fixtures

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultPassword satisfies the storefront's password rules
const DefaultPassword = "TestPass123!"

// RandomEmail returns an address no other call returns, even concurrently
func RandomEmail() string {
	return fmt.Sprintf("testuser%d%s@example.com", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// RandomString returns n random alphanumeric characters
func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.IntN(len(alphanumeric))]
	}
	return string(b)
}

// NewTestRegistration builds a valid registration for a fresh account
func NewTestRegistration() Registration {
	return Registration{
		FirstName:       RandomString(8),
		LastName:        RandomString(8),
		Email:           RandomEmail(),
		Password:        DefaultPassword,
		ConfirmPassword: DefaultPassword,
	}
}
