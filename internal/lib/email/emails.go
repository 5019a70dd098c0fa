package email

// WelcomeSubject is the subject line of the welcome email.
const WelcomeSubject = "Welcome aboard!"

// SendWelcomeEmail sends the welcome email to a newly created customer.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"FirstName": firstName,
	}

	return c.SendEmail(to, WelcomeSubject, TemplateWelcome, data)
}
