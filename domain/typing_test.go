package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypingSet_Start_ReportsTransitionsOnly(t *testing.T) {
	req := require.New(t)
	typing := NewTypingSet()

	// First start is a transition, the second is a no-op
	req.True(typing.Start("Alice"))
	req.False(typing.Start("Alice"))

	// Case-insensitive membership: "alice" is already typing
	req.False(typing.Start("alice"))

	req.Equal([]Username{"Alice"}, typing.Active())
}

func TestTypingSet_Stop_ReportsTransitionsOnly(t *testing.T) {
	req := require.New(t)
	typing := NewTypingSet()

	// Stop while not typing is a no-op
	req.False(typing.Stop("Alice"))

	typing.Start("Alice")
	req.True(typing.Stop("alice"))
	req.False(typing.Stop("Alice"))
	req.Empty(typing.Active())
}

func TestTypingSet_Active_PreservesStartOrder(t *testing.T) {
	req := require.New(t)
	typing := NewTypingSet()

	typing.Start("Carol")
	typing.Start("Alice")
	typing.Start("Bob")
	typing.Stop("Alice")

	req.Equal([]Username{"Carol", "Bob"}, typing.Active())
}
