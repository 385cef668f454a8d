package integrations_enums

type IntegrationProvider string

const (
	IntegrationProviderGithub IntegrationProvider = "github"
	IntegrationProviderSlack  IntegrationProvider = "slack"
)

func (p IntegrationProvider) IsValid() bool {
	switch p {
	case IntegrationProviderGithub, IntegrationProviderSlack:
		return true
	}

	return false
}

// Title is used as display name of the provider and of its bot account.
func (p IntegrationProvider) Title() string {
	switch p {
	case IntegrationProviderGithub:
		return "GitHub"
	case IntegrationProviderSlack:
		return "Slack"
	}

	return string(p)
}
