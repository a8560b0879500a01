package types

// User is a profile record served by the user directory API.
//
// The jsonschema tags drive the strict response schema in internal/userschema:
// every field without omitempty is required and unknown fields are rejected
// at every level.
type User struct {
	ID       int     `json:"id" jsonschema:"minimum=1"`
	Name     string  `json:"name" jsonschema:"minLength=1"`
	Username string  `json:"username" jsonschema:"minLength=1"`
	Email    string  `json:"email" jsonschema:"format=email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone" jsonschema:"pattern=^[0-9 ()+.x-]+$"`
	Website  string  `json:"website" jsonschema:"format=website"`
	Company  Company `json:"company"`
}

// Address is the postal address of a User.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode" jsonschema:"pattern=^[0-9]{5}(-[0-9]{4})?$"`
	Geo     Geo    `json:"geo"`
}

// Geo holds coordinates as the upstream API encodes them (decimal strings).
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company is the employer of a User.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}
