package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementsRegistered(t *testing.T) {
	for _, name := range []string{
		StmtHealthCheck, StmtDatasetList, StmtDatasetBySlug,
		StmtTeamProfile, StmtTeamResults, StmtJudgeProfile,
		StmtJudgeRecord, StmtFeedback,
	} {
		sql, ok := Statements[name]
		if assert.True(t, ok, name) {
			assert.NotEmpty(t, strings.TrimSpace(sql), name)
		}
	}
}

func TestParameterizedStatementsUsePlaceholders(t *testing.T) {
	for _, name := range []string{StmtDatasetBySlug, StmtTeamProfile, StmtTeamResults, StmtJudgeProfile, StmtJudgeRecord} {
		assert.Contains(t, Statements[name], "$1", name)
	}
	assert.Contains(t, Statements[StmtFeedback], "$5")
}
