package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalTokenRoundTrip(t *testing.T) {
	token, err := GenerateProposalToken(42, 7, time.Hour, "test-secret")
	require.NoError(t, err)

	claims, err := VerifyProposalToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ProposalID)
	assert.Equal(t, uint(7), claims.LeadID)
}

func TestProposalTokenWrongSecret(t *testing.T) {
	token, err := GenerateProposalToken(42, 7, time.Hour, "test-secret")
	require.NoError(t, err)

	_, err = VerifyProposalToken(token, "other-secret")
	assert.EqualError(t, err, "invalid token signature")
}

func TestProposalTokenExpired(t *testing.T) {
	token, err := GenerateProposalToken(42, 7, -time.Minute, "test-secret")
	require.NoError(t, err)

	_, err = VerifyProposalToken(token, "test-secret")
	assert.EqualError(t, err, "token expired")
}

func TestProposalTokenMalformed(t *testing.T) {
	_, err := VerifyProposalToken("not-a-token", "test-secret")
	assert.Error(t, err)

	_, err = VerifyProposalToken("", "")
	assert.Error(t, err)
}
