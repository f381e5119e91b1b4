package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"symmbot/domain/events"
	eventbus "symmbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	subject string
	data    []byte
}

type fakeMessagePublisher struct {
	mu       sync.Mutex
	messages []recordedMessage
	err      error
}

func (f *fakeMessagePublisher) Publish(_ context.Context, subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, recordedMessage{subject: subject, data: data})
	return nil
}

func (f *fakeMessagePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestSubjectFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event events.Event
		want  string
	}{
		{events.MemberJoinedEvent{GuildID: 1}, "symmbot.events.1.member_joined"},
		{events.RoleMenuDeletedEvent{GuildID: 22}, "symmbot.events.22.role_menu_deleted"},
		{events.DocumentationChangedEvent{GuildID: 3}, "symmbot.events.3.documentation_changed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SubjectFor(tt.event))
	}
}

func TestNATSEventPublisher_Publish(t *testing.T) {
	t.Parallel()

	fake := &fakeMessagePublisher{}
	publisher := NewNATSEventPublisher(fake)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	err := publisher.Publish(events.RoleBlocksChangedEvent{GuildID: 9, BlockingRoleID: 1, BlockedRoleID: 2, Added: true})
	require.NoError(t, err)
	require.Len(t, fake.messages, 1)
	assert.Equal(t, "symmbot.events.9.role_blocks_changed", fake.messages[0].subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(fake.messages[0].data, &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "role_blocks_changed", envelope.EventType)
	assert.Equal(t, int64(9), envelope.GuildID)
	assert.Equal(t, "symmbot", envelope.SourceService)
	assert.True(t, fixed.Equal(envelope.Timestamp))

	var payload events.RoleBlocksChangedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.True(t, payload.Added)
	assert.Equal(t, int64(2), payload.BlockedRoleID)
}

func TestNATSEventPublisher_PublishError(t *testing.T) {
	t.Parallel()

	publisher := NewNATSEventPublisher(&fakeMessagePublisher{err: errors.New("no responders")})

	err := publisher.Publish(events.MemberLeftEvent{GuildID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member_left")
}

func TestNATSEventPublisher_Attach(t *testing.T) {
	t.Parallel()

	fake := &fakeMessagePublisher{}
	bus := eventbus.NewBus()
	NewNATSEventPublisher(fake).Attach(bus)

	bus.Emit(context.Background(), events.MemberJoinedEvent{GuildID: 5, UserID: 6})

	assert.Eventually(t, func() bool { return fake.count() == 1 }, time.Second, 10*time.Millisecond)
}
