package config

func Default() *Config {
	c := &Config{
		BaseURL: DefaultBaseURL,
		Topics: []Topic{
			{Name: "LanguageWorkedWith", Label: "Languages worked with"},
			{Name: "LanguageDesireNextYear", Label: "Languages desired next year"},
			{Name: "DevType", Label: "Developer type"},
			{Name: "EdLevel", Label: "Education level"},
			{Name: "UndergradMajor", Label: "Undergraduate major"},
			{Name: "Employment", Label: "Employment status"},
			{Name: "JobSat", Label: "Job satisfaction"},
			{Name: "CareerSat", Label: "Career satisfaction"},
			{Name: "OpSys", Label: "Operating system"},
			{Name: "SocialMedia", Label: "Social media"},
		},
		Demographics: []Demographic{
			{Name: "Sexuality"},
			{Name: "Trans"},
			{Name: "Ethnicity"},
			{Name: "Gender"},
			{Name: "Dependents"},
		},
	}
	c.applyDefaults()
	return c
}
