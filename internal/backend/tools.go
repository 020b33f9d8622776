package backend

import (
	"context"
	"net/http"
)

// ListTools returns the shared tool configurations. Unlike documents
// and conversations these are not user-scoped, so no user header is
// sent.
func (c *Client) ListTools(ctx context.Context) ([]ToolConfiguration, error) {
	var tools []ToolConfiguration
	if err := c.doJSON(ctx, "", http.MethodGet, "/tools", nil, nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}
