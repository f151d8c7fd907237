package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/internal/http"
	"github.com/incydr-io/incydr-client/pkg/incydr"
)

// TrustedActivitiesClient implements incydr.TrustedActivitiesClient.
type TrustedActivitiesClient struct {
	httpClient *http.Client
}

// NewTrustedActivitiesClient creates a new trusted activities client.
func NewTrustedActivitiesClient(httpClient *http.Client) *TrustedActivitiesClient {
	return &TrustedActivitiesClient{httpClient: httpClient}
}

// Get implements incydr.TrustedActivitiesClient.Get.
func (c *TrustedActivitiesClient) Get(ctx context.Context, activityID string) (*incydr.TrustedActivity, error) {
	resp, err := c.httpClient.Get(ctx, "/v2/trusted-activities/"+activityID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting trusted activity: %w", err)
	}

	return parseTrustedActivity(resp.Body)
}

// GetPage implements incydr.TrustedActivitiesClient.GetPage.
func (c *TrustedActivitiesClient) GetPage(ctx context.Context, params *incydr.TrustedActivitiesQueryParams) (*incydr.TrustedActivitiesPage, error) {
	if params == nil {
		params = incydr.NewTrustedActivitiesQueryParams()
	}

	resp, err := c.httpClient.Get(ctx, "/v2/trusted-activities", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing trusted activities: %w", err)
	}

	var page incydr.TrustedActivitiesPage

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing trusted activities response: %w", err)
	}

	return &page, nil
}

// IterAll implements incydr.TrustedActivitiesClient.IterAll. The trusted
// activities endpoint numbers pages from 1.
func (c *TrustedActivitiesClient) IterAll(ctx context.Context, params *incydr.TrustedActivitiesQueryParams) *incydr.OffsetIterator[incydr.TrustedActivity] {
	base := incydr.TrustedActivitiesQueryParams{}
	if params != nil {
		base = *params
	}

	pageSize := base.PageSize
	if pageSize <= 0 {
		pageSize = constants.TrustedActivitiesDefaultPageSize
	}

	fetch := func(ctx context.Context, pageNum, pageSize int) ([]incydr.TrustedActivity, error) {
		query := base
		query.PageNum = pageNum
		query.PageSize = pageSize

		page, err := c.GetPage(ctx, &query)
		if err != nil {
			return nil, err
		}

		return page.TrustedActivities, nil
	}

	return incydr.NewOffsetIterator(ctx, fetch, &incydr.PaginationOptions{
		PageSize:  pageSize,
		StartPage: constants.TrustedActivitiesStartPage,
	})
}

// Create implements incydr.TrustedActivitiesClient.Create.
func (c *TrustedActivitiesClient) Create(ctx context.Context, activity *incydr.TrustedActivity) (*incydr.TrustedActivity, error) {
	if activity == nil || activity.Value == "" {
		return nil, &incydr.ValidationError{Field: "value", Reason: "is required"}
	}

	resp, err := c.httpClient.Post(ctx, "/v2/trusted-activities", activity)
	if err != nil {
		return nil, fmt.Errorf("creating trusted activity: %w", err)
	}

	return parseTrustedActivity(resp.Body)
}

// CreateForDomain implements incydr.TrustedActivitiesClient.CreateForDomain.
func (c *TrustedActivitiesClient) CreateForDomain(ctx context.Context, domain, description string) (*incydr.TrustedActivity, error) {
	return c.Create(ctx, &incydr.TrustedActivity{
		Type:        incydr.TrustedActivityDomain,
		Value:       domain,
		Description: description,
	})
}

// CreateForURLPath implements incydr.TrustedActivitiesClient.CreateForURLPath.
func (c *TrustedActivitiesClient) CreateForURLPath(ctx context.Context, urlPath, description string) (*incydr.TrustedActivity, error) {
	return c.Create(ctx, &incydr.TrustedActivity{
		Type:        incydr.TrustedActivityURLPath,
		Value:       urlPath,
		Description: description,
	})
}

// CreateForSlack implements incydr.TrustedActivitiesClient.CreateForSlack.
func (c *TrustedActivitiesClient) CreateForSlack(ctx context.Context, workspace, description string) (*incydr.TrustedActivity, error) {
	return c.Create(ctx, &incydr.TrustedActivity{
		Type:        incydr.TrustedActivitySlack,
		Value:       workspace,
		Description: description,
	})
}

// CreateForAccountName implements incydr.TrustedActivitiesClient.CreateForAccountName.
func (c *TrustedActivitiesClient) CreateForAccountName(ctx context.Context, accountName, description string) (*incydr.TrustedActivity, error) {
	return c.Create(ctx, &incydr.TrustedActivity{
		Type:        incydr.TrustedActivityAccountName,
		Value:       accountName,
		Description: description,
	})
}

// CreateForGitURI implements incydr.TrustedActivitiesClient.CreateForGitURI.
func (c *TrustedActivitiesClient) CreateForGitURI(ctx context.Context, gitURI, description string) (*incydr.TrustedActivity, error) {
	return c.Create(ctx, &incydr.TrustedActivity{
		Type:        incydr.TrustedActivityGitURI,
		Value:       gitURI,
		Description: description,
	})
}

// Update implements incydr.TrustedActivitiesClient.Update.
func (c *TrustedActivitiesClient) Update(ctx context.Context, activity *incydr.TrustedActivity) (*incydr.TrustedActivity, error) {
	if activity == nil || activity.ActivityID == "" {
		return nil, &incydr.ValidationError{Field: "activityId", Reason: "is required"}
	}

	resp, err := c.httpClient.Patch(ctx, "/v2/trusted-activities/"+activity.ActivityID, activity)
	if err != nil {
		return nil, fmt.Errorf("updating trusted activity: %w", err)
	}

	return parseTrustedActivity(resp.Body)
}

// Delete implements incydr.TrustedActivitiesClient.Delete.
func (c *TrustedActivitiesClient) Delete(ctx context.Context, activityID string) error {
	_, err := c.httpClient.Delete(ctx, "/v2/trusted-activities/"+activityID)
	if err != nil {
		return fmt.Errorf("deleting trusted activity: %w", err)
	}

	return nil
}

func parseTrustedActivity(data []byte) (*incydr.TrustedActivity, error) {
	var activity incydr.TrustedActivity

	err := json.Unmarshal(data, &activity)
	if err != nil {
		return nil, fmt.Errorf("parsing trusted activity response: %w", err)
	}

	return &activity, nil
}
