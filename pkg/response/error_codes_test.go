package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, "Candidate not found", Message(ErrCodeCandidateNotFound))
	assert.Equal(t, Message(ErrCodeInternal), Message("no_such_code"))
}
