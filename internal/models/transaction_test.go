package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    TransactionState
		terminal bool
	}{
		{TransactionStatePending, false},
		{TransactionStateApproved, true},
		{TransactionStateDeclined, true},
		{TransactionStateFailed, true},
		{TransactionState("UNKNOWN"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}
