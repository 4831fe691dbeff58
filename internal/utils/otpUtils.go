package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Code space is [100000, 999999]: six digits, never a leading zero.
const (
	otpCodeMin  = 100000
	otpCodeSpan = 900000
)

// GenerateOTP draws a uniform 6-digit code from a CSPRNG.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpCodeMin, 10), nil
}
