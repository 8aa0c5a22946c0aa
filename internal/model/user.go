package model

// User is the example entity managed by the API.
// ID is the primary key (_id) and is populated by the repository on insert.
type User struct {
	ID       int      `bson:"_id" json:"id"`
	Name     string   `bson:"name" json:"name" validate:"required,min=3,max=255"`
	Username string   `bson:"username" json:"username" validate:"required,min=3,max=25"`
	Email    string   `bson:"email" json:"email" validate:"required,email"`
	Address  *Address `bson:"address,omitempty" json:"address,omitempty" validate:"omitempty"`
	Phone    string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Website  string   `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	Company  *Company `bson:"company,omitempty" json:"company,omitempty" validate:"omitempty"`
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	Suite   string `bson:"suite" json:"suite"`
	City    string `bson:"city" json:"city"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
	Geo     *Geo   `bson:"geo,omitempty" json:"geo,omitempty" validate:"omitempty"`
}

type Geo struct {
	Lat string `bson:"lat" json:"lat" validate:"required,numeric"`
	Lng string `bson:"lng" json:"lng" validate:"required,numeric"`
}

type Company struct {
	Name        string `bson:"name" json:"name" validate:"required"`
	CatchPhrase string `bson:"catchPhrase" json:"catchPhrase"`
	BS          string `bson:"bs" json:"bs"`
}

func (u *User) GetID() int { return u.ID }

func (u *User) SetID(id int) { u.ID = id }

var _ Entity = (*User)(nil)
