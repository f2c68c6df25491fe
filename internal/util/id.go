package util

import (
	"fmt"
	"math/rand"
)

const userIDPrefix = "ting-"

// GenerateUserID returns a random id in ting-NNNN form. Uniqueness is
// enforced by the primary key; callers retry on collision.
func GenerateUserID() string {
	return fmt.Sprintf("%s%04d", userIDPrefix, rand.Intn(10000))
}
