package firestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticCreds struct {
	err error
}

func (s staticCreds) FirebaseCredentialsJSON() ([]byte, string, error) {
	return nil, "base64", s.err
}

func TestNew_CredentialError(t *testing.T) {
	boom := errors.New("decode FIREBASE_CREDS_BASE64: illegal base64 data")
	_, _, err := New(context.Background(), "rentals", staticCreds{err: boom})
	assert.ErrorIs(t, err, boom)
}
