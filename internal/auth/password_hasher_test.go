package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := BcryptHasher{}

	hash, err := hasher.Hash([]byte("correct horse battery staple"))
	require.NoError(t, err)
	assert.NotContains(t, string(hash), "correct horse")

	assert.NoError(t, hasher.Compare(hash, []byte("correct horse battery staple")))
	assert.Error(t, hasher.Compare(hash, []byte("wrong password")))
}

func TestBcryptHasherSaltedHashesDiffer(t *testing.T) {
	hasher := BcryptHasher{}

	h1, err := hasher.Hash([]byte("same password"))
	require.NoError(t, err)
	h2, err := hasher.Hash([]byte("same password"))
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
