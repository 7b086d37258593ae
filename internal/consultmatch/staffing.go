package consultmatch

import "fmt"

// TeamSize is the number of consultants a staffing commit expects.
const TeamSize = 5

type staffRequest struct {
	ConsultantIDs []int `json:"consultant_ids"`
}

func (c *Client) staffProject(projectID int, consultantIDs []int) error {
	if len(consultantIDs) != TeamSize {
		return fmt.Errorf("staffing requires exactly %d consultants, got %d", TeamSize, len(consultantIDs))
	}

	url := fmt.Sprintf("%s/api/projects/%d/staff", c.APIURL, projectID)

	return c.postJSON(url, staffRequest{ConsultantIDs: consultantIDs})
}
