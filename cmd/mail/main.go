package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

type mailKind struct {
	template string
	subject  string
}

var mailKinds = map[string]mailKind{
	domain.MailTypeCreateUser:    {template: "templates/new_account.html", subject: "Unclaimed Tracker - your account"},
	domain.MailTypeResetPassword: {template: "templates/reset_password.html", subject: "Unclaimed Tracker - password reset"},
	domain.MailTypeOverdueDigest: {template: "templates/overdue_digest.html", subject: "Unclaimed Tracker - overdue winnings"},
}

var templateFuncs = template.FuncMap{
	"money": func(v any) string {
		f, _ := v.(float64)
		return fmt.Sprintf("%.2f", f)
	},
}

// render returns the subject and HTML body for a queued message.
func render(msg domain.MailMessage) (string, string, error) {
	kind, ok := mailKinds[msg.Type]
	if !ok {
		return "", "", fmt.Errorf("unsupported mail type %q", msg.Type)
	}

	tmpl, err := template.New(path.Base(kind.template)).Funcs(templateFuncs).ParseFS(templateFS, kind.template)
	if err != nil {
		return "", "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, msg.Data); err != nil {
		return "", "", err
	}

	return kind.subject, body.String(), nil
}

func buildMessage(from string, msg domain.MailMessage) (*mail.Msg, error) {
	subject, body, err := render(msg)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, body)

	return m, nil
}

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("cannot read .env", "error", err)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * smtp client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("cannot create smtp client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("cannot reach smtp server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	if err := mailer.DeclareQueue(ch); err != nil {
		logger.Error("cannot declare mail queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		mailer.QueueName,
		"",    // consumer tag, let the broker pick one
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("cannot consume mail queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					logger.Error("mail queue closed")
					return
				}

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(delivery.Body, &mailMessage); err != nil {
					logger.Error("cannot decode mail message", slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}
				logger.Info("mail received", "type", mailMessage.Type, "to", mailMessage.To)

				m, err := buildMessage(cfg.Email.SMTP.Username, mailMessage)
				if err != nil {
					logger.Error("cannot build mail", "type", mailMessage.Type, slog.String("error", err.Error()))
					_ = delivery.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("cannot send mail", slog.String("error", err.Error()))
					_ = delivery.Nack(false, true) // requeue
					continue
				}

				_ = delivery.Ack(false)
			}
		}
	}()

	logger.Info("waiting for mail (CTRL+C to quit)")
	<-sigChan

	slog.Info("stopping mail worker")
	cancel()
	wg.Wait()
	slog.Info("mail worker stopped")
}
