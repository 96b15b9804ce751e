package redact

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain word", "secret", "secret"},
		{"base64 of text", base64.StdEncoding.EncodeToString([]byte("internal-host")), "internal-host"},
		{"base64 of unicode text", base64.StdEncoding.EncodeToString([]byte("机密")), "机密"},
		{"base64 of binary stays literal", "abcd", "abcd"},
		{"unpadded six bytes", "c2VjcmV0", "secret"},
		{"missing padding stays literal", "c2VjcmV0IQ", "c2VjcmV0IQ"},
		{"blank", "   ", "   "},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeKey(tt.key))
		})
	}
}

func TestReplacer_Words(t *testing.T) {
	r := New("", []string{"alpha", "beta"}, nil)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "** and ** and gamma", r.Apply("alpha and beta and gamma"))

	custom := New("[hidden]", []string{"alpha"}, nil)
	assert.Equal(t, "[hidden]-[hidden]", custom.Apply("alpha-alpha"))
}

func TestReplacer_PairsAreVerbatimAndOrdered(t *testing.T) {
	r := New("", nil, []Rule{
		{Match: "a.b", Replace: "X"},
		{Match: "X", Replace: "Y"},
	})
	// "a.b" is not a pattern: "acb" is untouched.
	assert.Equal(t, "Y acb", r.Apply("a.b acb"))
}

func TestReplacer_DecodesEncodedKeys(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("db.internal"))
	r := New("", []string{encoded}, []Rule{{Match: base64.StdEncoding.EncodeToString([]byte("token")), Replace: "<redacted>"}})

	assert.Equal(t, []Rule{
		{Match: "db.internal", Replace: DefaultWord},
		{Match: "token", Replace: "<redacted>"},
	}, r.Rules())
	assert.Equal(t, "connect ** with <redacted>", r.Apply("connect db.internal with token"))
}

func TestReplacer_DropsEmptyKeys(t *testing.T) {
	r := New("", []string{""}, []Rule{{Match: "", Replace: "x"}})
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, "unchanged", r.Apply("unchanged"))
}
