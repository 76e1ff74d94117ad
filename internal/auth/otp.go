package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const OTPTTL = 10 * time.Minute

// NewOTP returns a 6-digit one-time code for password reset.
func NewOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// rand.Reader failing means the host is broken; avoid issuing a guessable code
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
