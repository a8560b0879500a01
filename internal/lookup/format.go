package lookup

import (
	"fmt"
	"strings"

	"github.com/usestring/mcp-starter/pkg/types"
)

// FormatUser renders a user profile as plain text for a tool result.
func FormatUser(u *types.User) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "User Profile (ID %d)\n", u.ID)
	fmt.Fprintf(&sb, "Name: %s\n", u.Name)
	fmt.Fprintf(&sb, "Username: @%s\n", u.Username)
	fmt.Fprintf(&sb, "Email: %s\n", u.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", u.Phone)
	fmt.Fprintf(&sb, "Website: %s\n", u.Website)

	a := u.Address
	sb.WriteString("\nAddress:\n")
	fmt.Fprintf(&sb, "  %s, %s\n", a.Street, a.Suite)
	fmt.Fprintf(&sb, "  %s %s\n", a.City, a.Zipcode)
	fmt.Fprintf(&sb, "  Coordinates: %s, %s\n", a.Geo.Lat, a.Geo.Lng)

	c := u.Company
	sb.WriteString("\nCompany:\n")
	fmt.Fprintf(&sb, "  %s\n", c.Name)
	fmt.Fprintf(&sb, "  %q\n", c.CatchPhrase)
	fmt.Fprintf(&sb, "  %s", c.BS)

	return sb.String()
}
