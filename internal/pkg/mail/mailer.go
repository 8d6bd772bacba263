package mail

// Mailer delivers a single message to a recipient. The password reset flow
// depends on this interface so tests can substitute a fake.
type Mailer interface {
	Send(to string, subject string, body string) error
}
