package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashService_RoundTrip(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("Passw0rd12")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Passw0rd12", hash)

	ok, err := svc.Verify("Passw0rd12", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHashService_Mismatch(t *testing.T) {
	svc := NewBcryptHashService()

	hash, err := svc.Hash("Passw0rd12")
	require.NoError(t, err)

	ok, err := svc.Verify("Wrong0pass1", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHashService_SaltedHashesDiffer(t *testing.T) {
	svc := NewBcryptHashService()

	h1, err := svc.Hash("Passw0rd12")
	require.NoError(t, err)
	h2, err := svc.Hash("Passw0rd12")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestBcryptHashService_MalformedHash(t *testing.T) {
	svc := NewBcryptHashService()

	_, err := svc.Verify("Passw0rd12", "not-a-bcrypt-hash")
	assert.Error(t, err)
}
