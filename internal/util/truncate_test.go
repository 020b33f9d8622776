package util

import (
	"strings"
	"testing"
)

func TestTruncateLog(t *testing.T) {
	longIndexDef := "CREATE INDEX idx_messages_conversation_id ON messages USING btree (conversation_id, created_at)"

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short transcript untouched",
			input:  "hello there",
			maxLen: 80,
			want:   "hello there",
		},
		{
			name:   "exact limit untouched",
			input:  strings.Repeat("x", 40),
			maxLen: 40,
			want:   strings.Repeat("x", 40),
		},
		{
			name:   "long index definition truncated with byte count",
			input:  longIndexDef,
			maxLen: 40,
			want:   longIndexDef[:40] + "... [truncated, 95 bytes total]",
		},
		{
			name:   "empty input stays empty",
			input:  "",
			maxLen: 10,
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateLog(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("TruncateLog(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestTruncateBytes(t *testing.T) {
	short := []byte(`{"error":{"message":"boom"}}`)
	if got := TruncateBytes(short); got != string(short) {
		t.Errorf("TruncateBytes(short body) = %q, want unchanged", got)
	}

	// An oversized backend error body keeps its prefix and reports the
	// original size.
	body := `{"error":{"message":"` + strings.Repeat("upstream exploded ", 200) + `"}}`
	got := TruncateBytes([]byte(body))
	if !strings.HasPrefix(got, body[:DefaultLogMaxLen]) {
		t.Error("TruncateBytes should preserve the first DefaultLogMaxLen bytes")
	}
	if !strings.Contains(got, "[truncated,") || !strings.Contains(got, "bytes total]") {
		t.Errorf("TruncateBytes result %q should note the original size", got[DefaultLogMaxLen:])
	}
}
