package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/generator"
)

func TestAssistant_Chat(t *testing.T) {
	gen := &fakeGenerator{}
	a := NewAssistantService(gen, time.Second, testLogger())
	history := []generator.ChatMessage{
		{Role: generator.RoleUser, Text: "Warm-up ideas?"},
		{Role: generator.RoleModel, Text: "Try a flow."},
	}

	reply, err := a.Chat(context.Background(), history, "  and for rowing? ")
	require.NoError(t, err)
	assert.Equal(t, "reply to and for rowing?", reply)
	require.Len(t, gen.chats, 1)
	assert.Equal(t, history, gen.chats[0])
}

func TestAssistant_Validation(t *testing.T) {
	a := NewAssistantService(&fakeGenerator{}, time.Second, testLogger())

	_, err := a.Chat(context.Background(), nil, " ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = a.Chat(context.Background(), []generator.ChatMessage{{Role: "system", Text: "x"}}, "hi")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAssistant_TrimsLongHistory(t *testing.T) {
	gen := &fakeGenerator{}
	a := NewAssistantService(gen, time.Second, testLogger())

	var history []generator.ChatMessage
	for i := 0; i < maxChatTurns+6; i++ {
		history = append(history, generator.ChatMessage{Role: generator.RoleUser, Text: fmt.Sprint(i)})
	}
	_, err := a.Chat(context.Background(), history, "hi")
	require.NoError(t, err)
	require.Len(t, gen.chats[0], maxChatTurns)
	assert.Equal(t, "6", gen.chats[0][0].Text)
}

func TestAssistant_WrapsGeneratorErrors(t *testing.T) {
	gen := &fakeGenerator{err: &generator.GenerationError{Kind: generator.ErrQuota}}
	a := NewAssistantService(gen, time.Second, testLogger())

	_, err := a.Chat(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrChatFailed)
	assert.ErrorIs(t, err, generator.ErrQuota)
}
