package consultmatch

import (
	"fmt"
	"strings"
)

const availabilityNotSpecified = "Not specified"

type Consultant struct {
	ID                  int    `json:"id"`
	FirstName           string `json:"first_name" mapstructure:"first_name"`
	LastName            string `json:"last_name" mapstructure:"last_name"`
	Email               string `json:"email"`
	SeniorityLevel      string `json:"seniority_level" mapstructure:"seniority_level"`
	Skill1              string `json:"skill1"`
	Skill2              string `json:"skill2"`
	Skill3              string `json:"skill3"`
	YearsOfExperience   int    `json:"years_of_experience" mapstructure:"years_of_experience"`
	CurrentAvailability string `json:"current_availability" mapstructure:"current_availability"`
	PastProjectIndustry string `json:"past_project_industry" mapstructure:"past_project_industry"`
	Hobbies             string `json:"hobbies"`
}

// DisplayName returns the "First Last" form used in prompts and in
// team-selection replies.
func (c *Consultant) DisplayName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", strings.TrimSpace(c.FirstName), strings.TrimSpace(c.LastName)))
}

// Skills returns the up-to-three skill tags, skipping empty slots.
func (c *Consultant) Skills() []string {
	skills := make([]string, 0, 3)
	for _, s := range []string{c.Skill1, c.Skill2, c.Skill3} {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}

	return skills
}

// Availability returns the availability window or a fixed
// placeholder when the profile does not specify one.
func (c *Consultant) Availability() string {
	if strings.TrimSpace(c.CurrentAvailability) == "" {
		return availabilityNotSpecified
	}

	return c.CurrentAvailability
}

type Consultants struct {
	Items []*Consultant
}

func (c *Consultants) Len() int {
	return len(c.Items)
}

func (c *Client) getConsultants() (*Consultants, error) {
	items, err := c.getItems(fmt.Sprintf("%s/consultants", c.APIURL))
	if err != nil {
		return nil, err
	}

	var consultants []*Consultant
	if err := decodeItems(items, &consultants); err != nil {
		return nil, err
	}

	return &Consultants{Items: consultants}, nil
}
