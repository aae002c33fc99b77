package libs

import (
	"context"
	"errors"
	"fmt"

	"mithai-mahal/models"

	"gopkg.in/gomail.v2"
)

type MailerConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AdminTo  string
}

// Mailer sends low stock alerts to the shop admin over SMTP.
type Mailer struct {
	sender  gomail.Sender
	dialer  *gomail.Dialer
	from    string
	adminTo string
}

func NewMailer(cfg MailerConfig) (*Mailer, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		return nil, errors.New("SMTP configuration missing")
	}
	if cfg.AdminTo == "" {
		return nil, errors.New("admin email not configured")
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    from,
		adminTo: cfg.AdminTo,
	}, nil
}

// NewMailerWithSender skips dialing and hands messages straight to sender.
func NewMailerWithSender(sender gomail.Sender, from, adminTo string) *Mailer {
	return &Mailer{sender: sender, from: from, adminTo: adminTo}
}

func (m *Mailer) NotifyLowStock(ctx context.Context, sweet models.Sweet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := lowStockMessage(m.from, m.adminTo, sweet)

	var err error
	if m.sender != nil {
		err = gomail.Send(m.sender, msg)
	} else {
		err = m.dialer.DialAndSend(msg)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func lowStockMessage(from, to string, sweet models.Sweet) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)

	subject := fmt.Sprintf("Low stock: %s - Mithai Mahal", sweet.Name)
	if sweet.QuantityInStock == 0 {
		subject = fmt.Sprintf("Sold out: %s - Mithai Mahal", sweet.Name)
	}
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #fff8f0; padding: 20px;">
    <h2 style="color: #b45309;">Mithai Mahal inventory alert</h2>
    <p><strong>%s</strong> (%s) has <strong>%d</strong> left in stock.</p>
    <p>Price: &#8377;%.2f</p>
    <p>Restock it from the admin dashboard before it runs out.</p>
</body>
</html>
	`, sweet.Name, sweet.Category, sweet.QuantityInStock, sweet.Price)

	m.SetBody("text/html", body)
	return m
}
