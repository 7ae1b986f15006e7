package user

// User represents one record in the remote user directory. The JSON
// tags match the directory API wire shape exactly, including the
// camelCase company fields.
type User struct {
	ID       int64   `json:"id"` // ID is assigned by the server and immutable once created
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
	Address  Address `json:"address"`
}

// Company is the nested company value object of a User.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Address is the nested address value object of a User.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Geo holds the coordinates of an Address. The directory API carries
// them as strings, not numbers.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}
