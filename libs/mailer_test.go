package libs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"mithai-mahal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type capturedMail struct {
	from string
	to   []string
	raw  string
}

func capturingSender(out *[]capturedMail) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		var buf bytes.Buffer
		if _, err := msg.WriteTo(&buf); err != nil {
			return err
		}
		*out = append(*out, capturedMail{from: from, to: to, raw: buf.String()})
		return nil
	}
}

func TestMailer_NotifyLowStock(t *testing.T) {
	var sent []capturedMail
	mailer := NewMailerWithSender(capturingSender(&sent), "shop@mithaimahal.in", "owner@mithaimahal.in")

	err := mailer.NotifyLowStock(context.Background(), models.Sweet{Name: "Gum", Category: "Candy", Price: 5, QuantityInStock: 2})
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, "shop@mithaimahal.in", sent[0].from)
	assert.Equal(t, []string{"owner@mithaimahal.in"}, sent[0].to)
	assert.Contains(t, sent[0].raw, "Subject: Low stock: Gum - Mithai Mahal")
}

func TestMailer_SoldOutSubject(t *testing.T) {
	var sent []capturedMail
	mailer := NewMailerWithSender(capturingSender(&sent), "shop@mithaimahal.in", "owner@mithaimahal.in")

	require.NoError(t, mailer.NotifyLowStock(context.Background(), models.Sweet{Name: "Gum", QuantityInStock: 0}))
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].raw, "Subject: Sold out: Gum - Mithai Mahal")
}

func TestMailer_PropagatesSendFailure(t *testing.T) {
	boom := errors.New("smtp down")
	mailer := NewMailerWithSender(gomail.SendFunc(func(string, []string, io.WriterTo) error { return boom }), "a@b.c", "d@e.f")

	err := mailer.NotifyLowStock(context.Background(), models.Sweet{Name: "Gum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), boom.Error())
}

func TestMailer_CancelledContext(t *testing.T) {
	var sent []capturedMail
	mailer := NewMailerWithSender(capturingSender(&sent), "a@b.c", "d@e.f")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, mailer.NotifyLowStock(ctx, models.Sweet{Name: "Gum"}), context.Canceled)
	assert.Empty(t, sent)
}

func TestNewMailer_RequiresConfiguration(t *testing.T) {
	_, err := NewMailer(MailerConfig{AdminTo: "owner@mithaimahal.in"})
	assert.Error(t, err)

	_, err = NewMailer(MailerConfig{Host: "smtp.example.com", Port: 587, User: "u", Password: "p"})
	assert.Error(t, err)

	m, err := NewMailer(MailerConfig{Host: "smtp.example.com", Port: 587, User: "u@example.com", Password: "p", AdminTo: "owner@mithaimahal.in"})
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", m.from)
}
