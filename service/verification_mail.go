// Package service contains supporting services that sit between the
// handlers and external systems
package service

import (
	"errors"
	"fmt"

	"authhub/auth-api/model"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// VerificationLink builds the absolute URL a user has to visit to
// consume their verification token
func VerificationLink(t *model.VerificationToken) string {
	var s string
	if viper.GetBool("host.ssl.enabled") {
		s = "s"
	}

	return fmt.Sprintf("http%v://%v/api/users/verify?token=%v",
		s, viper.GetString("host.domain"), t.Token)
}

// SendVerificationMail sends the verification link to sendTo. The
// token must already be committed to the database before this is
// called, a delivery failure never rolls back registration.
func SendVerificationMail(t *model.VerificationToken, sendTo string) error {
	from := viper.GetString("mail.sender")
	if from == "" {
		return errors.New("no mail sender configured")
	}

	if sendTo == from {
		return errors.New("invalid email address")
	}

	verifLink := VerificationLink(t)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Verify your AuthHub account")
	m.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.", verifLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}

// DeliverVerificationMail tries to send the verification mail and
// recovers locally when it can't. In dev mode the link is logged so
// the flow stays testable without an SMTP server.
func DeliverVerificationMail(t *model.VerificationToken, sendTo string) {
	err := SendVerificationMail(t, sendTo)
	if err == nil {
		zap.L().Info("Verification email sent", zap.String("to", sendTo))
		return
	}

	zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("to", sendTo))

	if viper.GetBool("app.dev") {
		zap.L().Warn("Dev fallback, verification link follows",
			zap.String("to", sendTo),
			zap.String("link", VerificationLink(t)),
		)
	}
}
