package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate_StdinJSON(t *testing.T) {
	out, _, err := execute(t, `{"name":"Ada","address":"1 Main St","sendType":"phone","phoneNumbers":["0123456789"],"email":"x"}`, "validate")
	require.NoError(t, err)

	var rec struct {
		ID    string         `json:"id"`
		Order map[string]any `json:"order"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "phone", rec.Order["sendType"])
	assert.NotContains(t, rec.Order, "email")
}

func TestValidate_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ada\naddress: 1 Main St\nsendType: email\nemail: ada@example.com\n"), 0o600))

	out, _, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"email":"ada@example.com"`)
}

func TestValidate_Rejected(t *testing.T) {
	_, stderr, err := execute(t, "sendType: phone\nname: Ada\naddress: x\nphoneNumbers: ['123']\n", "validate", "--format", "yaml")
	require.ErrorIs(t, err, errRejected)
	assert.Contains(t, stderr, "/phoneNumbers/0: Phone number must be 10 digits long (too_short)")
}

func TestValidate_UnknownSendType(t *testing.T) {
	_, stderr, err := execute(t, `{"name":"A","address":"B","sendType":"fax"}`, "validate")
	require.ErrorIs(t, err, errRejected)
	assert.Contains(t, stderr, "/sendType:")
	assert.Contains(t, stderr, "discriminator_unknown")
}

func TestValidate_MalformedJSON(t *testing.T) {
	_, stderr, err := execute(t, `{"name":`, "validate")
	require.ErrorIs(t, err, errRejected)
	assert.Contains(t, stderr, "parse_error")
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, "", "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "oneOf")
	assert.Len(t, doc["oneOf"], 3)
}
