package importers_enums

type ImportService string

const (
	ImportServiceGithub ImportService = "github"
	ImportServiceJira   ImportService = "jira"
)

func (s ImportService) IsValid() bool {
	switch s {
	case ImportServiceGithub, ImportServiceJira:
		return true
	}

	return false
}
