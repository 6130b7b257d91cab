package mailer

import "fmt"

func Reminder(to, name, counterpart, date, slot string) Message {
	return Message{
		To:      to,
		Subject: "Appointment reminder",
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder of your appointment with %s on %s at %s.\n",
			name, counterpart, date, slot,
		),
	}
}

func BarberInvite(to, link string) Message {
	return Message{
		To:      to,
		Subject: "You have been invited as a barber",
		Body:    fmt.Sprintf("Complete your registration here:\n\n%s\n\nThe link expires in 72 hours.\n", link),
	}
}

func VerifyEmail(to, name, link string) Message {
	return Message{
		To:      to,
		Subject: "Confirm your email",
		Body:    fmt.Sprintf("Hello %s,\n\nConfirm your account here:\n\n%s\n", name, link),
	}
}

func PasswordReset(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Password reset",
		Body:    fmt.Sprintf("Reset your password here:\n\n%s\n\nThe link expires in one hour.\n", link),
	}
}
