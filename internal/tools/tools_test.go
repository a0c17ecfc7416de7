package tools

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasydesk/espn-mcp/internal/query"
)

func TestParseCompetitors(t *testing.T) {
	competitors, err := parseCompetitors([]any{float64(7), "Smith", 3})
	require.NoError(t, err)
	require.Len(t, competitors, 3)
	assert.Equal(t, query.Competitor{TeamID: 7}, competitors[0])
	assert.Equal(t, query.Competitor{Text: "Smith"}, competitors[1])
	assert.Equal(t, query.Competitor{TeamID: 3}, competitors[2])
}

func TestParseCompetitorsRejectsOtherTypes(t *testing.T) {
	_, err := parseCompetitors([]any{true})
	require.Error(t, err)
	assert.ErrorIs(t, err, query.ErrInvalidInput)
}

func TestToolErrorAuthRemediation(t *testing.T) {
	res := toolError(errors.New("unexpected status code: 401: nope"), "retrieving league")
	require.True(t, res.IsError)
	text := res.Content[0].(*mcp.TextContent).Text
	assert.Equal(t, authRequiredMessage, text)
}

func TestToolErrorPlainFailure(t *testing.T) {
	res := toolError(errors.New("connection refused"), "retrieving league")
	require.True(t, res.IsError)
	text := res.Content[0].(*mcp.TextContent).Text
	assert.Equal(t, "Error retrieving league: connection refused", text)
}

func TestRequiredError(t *testing.T) {
	res := requiredError("league_id")
	require.True(t, res.IsError)
	text := res.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "league_id is required")
}
