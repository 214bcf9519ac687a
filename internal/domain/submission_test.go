package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name string
		data string
		want SubmissionIdentity
	}{
		{
			name: "lowercase keys",
			data: `{"email":"jane@x.com","name":"Jane","phone":"555-1234"}`,
			want: SubmissionIdentity{Email: "jane@x.com", Name: "Jane", Phone: "555-1234"},
		},
		{
			name: "capitalized keys",
			data: `{"Email":"Jane@X.com","Name":"Jane Doe","Phone":"555"}`,
			want: SubmissionIdentity{Email: "jane@x.com", Name: "Jane Doe", Phone: "555"},
		},
		{
			name: "email is case folded and trimmed",
			data: `{"email":"  JANE@X.COM  "}`,
			want: SubmissionIdentity{Email: "jane@x.com", Name: "jane"},
		},
		{
			name: "name falls back to email local part",
			data: `{"email":"bob@example.org","message":"hi"}`,
			want: SubmissionIdentity{Email: "bob@example.org", Name: "bob"},
		},
		{
			name: "no identity fields",
			data: `{"message":"hello"}`,
			want: SubmissionIdentity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIdentity(json.RawMessage(tt.data))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateSubmissionRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := &CreateSubmissionRequest{FormID: "f1", Data: json.RawMessage(`{"email":"a@b.c"}`)}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing form id", func(t *testing.T) {
		req := &CreateSubmissionRequest{Data: json.RawMessage(`{}`)}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid json", func(t *testing.T) {
		req := &CreateSubmissionRequest{FormID: "f1", Data: json.RawMessage(`{"broken`)}
		assert.Error(t, req.Validate())
	})

	t.Run("empty data", func(t *testing.T) {
		req := &CreateSubmissionRequest{FormID: "f1"}
		assert.Error(t, req.Validate())
	})
}
