package form

import (
	"encoding/json"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

// Field names used by the form. Nested fields use dotted paths, the
// same names the inputs are labeled with.
const (
	FieldName        = "name"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldWebsite     = "website"
	FieldCompanyName = "company.name"
)

// Draft is the in-progress, unpersisted copy of a user's editable
// fields. It never aliases an entry of the authoritative list; the
// session builds it from a deep copy of the entity on open and turns
// it back into an entity only on a valid submit.
type Draft struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`

	CompanyName        string `json:"companyName"`
	CompanyCatchPhrase string `json:"companyCatchPhrase"`
	CompanyBS          string `json:"companyBs"`

	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	GeoLat  string `json:"geoLat"`
	GeoLng  string `json:"geoLng"`
}

// draftFromUser copies the editable fields of an entity into a Draft.
func draftFromUser(u *domain.User) Draft {
	return Draft{
		Name:               u.Name,
		Username:           u.Username,
		Email:              u.Email,
		Phone:              u.Phone,
		Website:            u.Website,
		CompanyName:        u.Company.Name,
		CompanyCatchPhrase: u.Company.CatchPhrase,
		CompanyBS:          u.Company.BS,
		Street:             u.Address.Street,
		Suite:              u.Address.Suite,
		City:               u.Address.City,
		Zipcode:            u.Address.Zipcode,
		GeoLat:             u.Address.Geo.Lat,
		GeoLng:             u.Address.Geo.Lng,
	}
}

// toUser assembles an entity from the draft fields. The id is left
// zero; the session fills it in when editing an existing user.
func (d Draft) toUser() domain.User {
	return domain.User{
		Name:     d.Name,
		Username: d.Username,
		Email:    d.Email,
		Phone:    d.Phone,
		Website:  d.Website,
		Company: domain.Company{
			Name:        d.CompanyName,
			CatchPhrase: d.CompanyCatchPhrase,
			BS:          d.CompanyBS,
		},
		Address: domain.Address{
			Street:  d.Street,
			Suite:   d.Suite,
			City:    d.City,
			Zipcode: d.Zipcode,
			Geo: domain.Geo{
				Lat: d.GeoLat,
				Lng: d.GeoLng,
			},
		},
	}
}

// get returns the value of a field by its dotted path name.
func (d Draft) get(name string) string {
	switch name {
	case FieldName:
		return d.Name
	case FieldUsername:
		return d.Username
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldWebsite:
		return d.Website
	case FieldCompanyName:
		return d.CompanyName
	}
	return ""
}

// set writes the value of a field by its dotted path name. Unknown
// names are ignored.
func (d *Draft) set(name, value string) {
	switch name {
	case FieldName:
		d.Name = value
	case FieldUsername:
		d.Username = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldWebsite:
		d.Website = value
	case FieldCompanyName:
		d.CompanyName = value
	}
}

// serialize renders the draft into a canonical string for dirty
// comparison against the opening snapshot.
func serialize(d Draft) string {
	b, err := json.Marshal(d)
	if err != nil {
		// Draft is a struct of plain strings; Marshal cannot fail.
		return ""
	}
	return string(b)
}
