package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebigday/planexpiry/pkg/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	valid := email.SendEmailParams{
		SendTo:   "couple@example.com",
		Subject:  "Your free plan is expiring",
		BodyHTML: "<p>Hi there</p>",
	}

	t.Run("valid params", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing recipient", func(t *testing.T) {
		p := valid
		p.SendTo = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		p := valid
		p.SendTo = "not-an-email"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing subject", func(t *testing.T) {
		p := valid
		p.Subject = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing body", func(t *testing.T) {
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestNewPostmarkClient(t *testing.T) {
	t.Run("requires tokens", func(t *testing.T) {
		_, err := email.NewPostmarkClient(email.Config{SenderEmail: "noreply@thebigdaypage.com"})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("requires valid sender", func(t *testing.T) {
		_, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken:  "server",
			PostmarkAccountToken: "account",
			SenderEmail:          "bogus",
		})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("valid config", func(t *testing.T) {
		sender, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken:  "server",
			PostmarkAccountToken: "account",
			SenderEmail:          "noreply@thebigdaypage.com",
		})
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

func TestDevSender(t *testing.T) {
	dir := t.TempDir()
	sender := email.NewDevSender(filepath.Join(dir, "outbox"))

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "couple@example.com",
		Subject:  "Your free plan is expiring",
		BodyHTML: "<p>Hi there</p>",
		Tag:      "free-expiry-warning",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "outbox"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = e.Name()
		case ".json":
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)

	body, err := os.ReadFile(filepath.Join(dir, "outbox", htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi there</p>", string(body))

	raw, err := os.ReadFile(filepath.Join(dir, "outbox", jsonFile))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "couple@example.com", meta["send_to"])
	assert.Equal(t, "free-expiry-warning", meta["tag"])
}
