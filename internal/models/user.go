package models

// User is a marketplace account. Only the fields the messaging and
// notification flows touch are modelled here.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName is what notification templates show for the user.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
