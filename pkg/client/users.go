package client

import (
	"context"
	"fmt"
	"strconv"
)

// GetUserRaw retrieves the user with the given ID and returns the response
// body without decoding it, so callers can validate the payload shape first.
func (c *Client) GetUserRaw(ctx context.Context, userID int) ([]byte, error) {
	body, err := c.getRaw(ctx, "/users/"+strconv.Itoa(userID))
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", userID, err)
	}
	return body, nil
}
