package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"sessionId" validate:"required"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(sampleRequest{Question: "q", SessionId: "s"})
	assert.NoError(t, err)
}

func TestValidateRequestReportsMissingFields(t *testing.T) {
	err := ValidateRequest(sampleRequest{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
	assert.Contains(t, validationErr.Error(), "Question")
	assert.Contains(t, validationErr.Error(), "SessionId")
}
