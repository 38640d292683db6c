package auth

import "github.com/google/uuid"

// GenerateOpaqueToken returns a random, unguessable token string. It carries
// no decodable structure and is only useful as a lookup key.
func GenerateOpaqueToken() string {
	return uuid.NewString()
}
