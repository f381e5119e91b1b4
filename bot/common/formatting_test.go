package common

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleMentions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty", "", nil},
		{"mentions", "<@&111111111111111111> <@&222222222222222222>", []int64{111111111111111111, 222222222222222222}},
		{"bare ids", "333333333333333333, 444444444444444444", []int64{333333333333333333, 444444444444444444}},
		{"ignores user mentions", "<@555555555555555555>", nil},
		{"ignores nickname mentions", "<@!555555555555555555>", nil},
		{"ignores channel mentions", "<#666666666666666666>", nil},
		{"mixed input keeps roles only", "<@123456789012345678> <@&777777777777777777> <#223456789012345678> 888888888888888888",
			[]int64{777777777777777777, 888888888888888888}},
		{"ignores short numbers", "roles 12 and 34", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRoleMentions(tt.input))
		})
	}
}

func TestParseRoleGroups(t *testing.T) {
	t.Parallel()

	groups := ParseRoleGroups("<@&111111111111111111> <@&222222222222222222> | <@&333333333333333333> | nothing")
	assert.Equal(t, [][]int64{
		{111111111111111111, 222222222222222222},
		{333333333333333333},
	}, groups)
}

func TestFormatRoleList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "None", FormatRoleList(nil))
	assert.Equal(t, "<@&1>, <@&2>", FormatRoleList([]int64{1, 2}))
}

func TestChunkMessage(t *testing.T) {
	t.Parallel()

	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, ChunkMessage("hello", 2000))
	})

	t.Run("empty text has no chunks", func(t *testing.T) {
		assert.Empty(t, ChunkMessage("", 2000))
	})

	t.Run("splits on newlines", func(t *testing.T) {
		chunks := ChunkMessage("aaaa\nbbbb\ncccc", 10)
		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)
	})

	t.Run("splits on spaces without newlines", func(t *testing.T) {
		chunks := ChunkMessage("aaaa bbbb cccc", 10)
		assert.Equal(t, []string{"aaaa bbbb", "cccc"}, chunks)
	})

	t.Run("keeps indentation after a line break", func(t *testing.T) {
		chunks := ChunkMessage("aaaa\n  bbbb", 8)
		assert.Equal(t, []string{"aaaa", "  bbbb"}, chunks)
	})

	t.Run("hard split without separators", func(t *testing.T) {
		text := strings.Repeat("x", 4500)
		chunks := ChunkMessage(text, 2000)
		assert.Len(t, chunks, 3)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 2000)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("keeps runes intact", func(t *testing.T) {
		chunks := ChunkMessage(strings.Repeat("é", 5), 3)
		for _, chunk := range chunks {
			assert.True(t, len(chunk) <= 3)
			assert.NotContains(t, chunk, "�")
		}
		assert.Equal(t, strings.Repeat("é", 5), strings.Join(chunks, ""))
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short text unchanged", "Members", 80, "Members"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long text gets ellipsis", "abcdefgh", 5, "abcd…"},
		{"counts runes not bytes", "ééééé", 4, "ééé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.max)
		})
	}
}
