package initialize

import (
	"github.com/dealpipeline/dbinit/internal/bootstrap"
	"github.com/dealpipeline/dbinit/internal/cli"
	"github.com/dealpipeline/dbinit/internal/terminal"

	"github.com/AlecAivazis/survey/v2"
)

const (
	inputFieldPassword = "password"
)

type inputs struct {
	CredentialName     string
	CredentialPassword string
	CredentialPolicy   bootstrap.Policy
	CollectionPolicy   bootstrap.Policy
	IndexPolicy        bootstrap.Policy

	config bootstrap.Config
}

// Resolve resolves the bootstrap configuration from the profile, applies any
// flag overrides and prompts for the credential password if none is configured
func (i *inputs) Resolve(profile *cli.Profile, ui terminal.UI) error {
	config, err := profile.BootstrapConfig()
	if err != nil {
		return err
	}

	if i.CredentialName != "" {
		config.Credential.Name = i.CredentialName
	}
	if i.CredentialPassword != "" {
		config.Credential.Password = i.CredentialPassword
	}
	if i.CredentialPolicy != "" {
		config.Credential.IfExists = i.CredentialPolicy
	}
	if i.CollectionPolicy != "" {
		for n := range config.Collections {
			config.Collections[n].IfExists = i.CollectionPolicy
		}
	}
	if i.IndexPolicy != "" {
		for n := range config.Indexes {
			config.Indexes[n].IfExists = i.IndexPolicy
		}
	}

	if config.Credential.Password == "" {
		var answers struct {
			Password string `survey:"password"`
		}
		if err := ui.Ask(&answers, &survey.Question{
			Name:     inputFieldPassword,
			Prompt:   &survey.Password{Message: "Credential Password"},
			Validate: survey.Required,
		}); err != nil {
			return err
		}
		config.Credential.Password = answers.Password
	}

	if err := config.Validate(); err != nil {
		return err
	}

	i.config = config
	return nil
}
