package main

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestReportQuery(t *testing.T) {
	log.SetLevel(log.ErrorLevel)
	tests := []struct {
		q, qs     string
		wantWord  string
		wantShort bool
	}{
		{q: "ACGT", wantWord: "ACGT"},
		{qs: "ACGT", wantWord: "ACGT", wantShort: true},
		{q: "AAAA", qs: "ACGT", wantWord: "ACGT", wantShort: true},
	}
	for _, tt := range tests {
		word, short := reportQuery(tt.q, tt.qs)
		assert.Equal(t, tt.wantWord, word)
		assert.Equal(t, tt.wantShort, short)
	}
}
