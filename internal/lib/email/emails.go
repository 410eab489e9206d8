package email

const welcomeSubject = "Welcome aboard!"

// SendWelcomeEmail greets a newly created user by name.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, welcomeSubject, TemplateWelcome, map[string]string{
		"UserName": name,
	})
}
