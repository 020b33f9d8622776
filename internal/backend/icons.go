package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voyalab/backplane/internal/logging"
)

// FetchIcon retrieves the raw bytes of a tool icon. Icons live on a
// fixed backend path outside /api/v1 and need only the service
// credential, no user identity. Any non-success upstream status maps
// to ErrNotFound; the caller presents a generic error to its client.
func (c *Client) FetchIcon(ctx context.Context, iconName string) ([]byte, error) {
	u := c.baseURL + "/v1/tools/icons/" + url.PathEscape(iconName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build icon request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon %s: %w", iconName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Debugf("icon %s upstream status %d", iconName, resp.StatusCode)
		return nil, fmt.Errorf("%w: icon %s (upstream status %d)", ErrNotFound, iconName, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read icon %s: %w", iconName, err)
	}
	return data, nil
}
