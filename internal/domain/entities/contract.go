package entities

// UserType is the role of the signed-in user on a contract.
type UserType string

const (
	UserTypeContractor UserType = "contractor"
	UserTypeHouseOwner UserType = "house_owner"
)

func (u UserType) Valid() bool {
	return u == UserTypeContractor || u == UserTypeHouseOwner
}

// Contract is the slice of a contract the estimates views need.
type Contract struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}
