package consultmatch

import (
	"fmt"
	"strings"
)

type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"project_name" mapstructure:"project_name"`
	PreferredIndustry string `json:"preferred_industry" mapstructure:"preferred_industry"`
	StartDate         string `json:"start_date" mapstructure:"start_date"`
	EndDate           string `json:"end_date" mapstructure:"end_date"`
	LocationCity      string `json:"location_city" mapstructure:"location_city"`
	LocationCountry   string `json:"location_country" mapstructure:"location_country"`
	Difficulty        string `json:"difficulty"`
	Description       string `json:"description"`
	RequiredSkill1    string `json:"required_skill1" mapstructure:"required_skill1"`
	RequiredSkill2    string `json:"required_skill2" mapstructure:"required_skill2"`
	RequiredSkill3    string `json:"required_skill3" mapstructure:"required_skill3"`
}

// RequiredSkills returns the up-to-three skill tags, skipping empty
// slots.
func (p *Project) RequiredSkills() []string {
	skills := make([]string, 0, 3)
	for _, s := range []string{p.RequiredSkill1, p.RequiredSkill2, p.RequiredSkill3} {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, s)
		}
	}

	return skills
}

type Projects struct {
	Items []*Project
}

func (p *Projects) Len() int {
	return len(p.Items)
}

func (p *Projects) FindByID(id int) *Project {
	for _, project := range p.Items {
		if project.ID == id {
			return project
		}
	}

	return nil
}

func (c *Client) getProject(id int) (*Project, error) {
	var project *Project
	if err := c.getJSON(fmt.Sprintf("%s/projects/%d", c.APIURL, id), &project); err != nil {
		return nil, err
	}

	if project == nil || project.ID != id {
		return nil, fmt.Errorf("backend returned invalid data for project %d", id)
	}

	return project, nil
}

func (c *Client) getProjects() (*Projects, error) {
	items, err := c.getItems(fmt.Sprintf("%s/projects", c.APIURL))
	if err != nil {
		return nil, err
	}

	var projects []*Project
	if err := decodeItems(items, &projects); err != nil {
		return nil, err
	}

	return &Projects{Items: projects}, nil
}
