package email

type Template string

const (
	TemplateWelcome Template = "welcome"
)

func (t Template) file() string {
	return string(t) + ".html"
}
