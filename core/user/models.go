package user

import (
	"time"

	"github.com/eduhub/eduhub/core"
)

// Roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

var (
	Roles = []string{RoleStudent, RoleInstructor}

	// SkillsPool is where seeded profiles draw their skills from.
	SkillsPool = []string{"Python", "MongoDB", "Data Analysis", "Machine Learning", "Web Development"}
)

type Profile struct {
	Bio    string   `bson:"bio" json:"bio"`
	Avatar string   `bson:"avatar" json:"avatar"`
	Skills []string `bson:"skills" json:"skills"`
}

type User struct {
	UserID     string     `bson:"userId" json:"userId"`
	Email      string     `bson:"email" json:"email"`
	FirstName  string     `bson:"firstName" json:"firstName"`
	LastName   string     `bson:"lastName" json:"lastName"`
	Role       string     `bson:"role" json:"role"`
	DateJoined time.Time  `bson:"dateJoined" json:"dateJoined"` // UTC
	UpdatedAt  *time.Time `bson:"updatedAt" json:"updatedAt"`   // UTC, nil until first update
	Profile    Profile    `bson:"profile" json:"profile"`
	IsActive   bool       `bson:"isActive" json:"isActive"`
}

func (u User) Ref() core.Ref {
	return core.UserRef(u.UserID)
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email     string   `json:"email" validate:"required,emailaddr"`
	FirstName string   `json:"firstName" validate:"notblank"`
	LastName  string   `json:"lastName" validate:"notblank"`
	Role      string   `json:"role" validate:"required,role"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar" validate:"omitempty,url"`
	Skills    []string `json:"skills"`
}

func (nu *NewUser) Validate() error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Bio = core.CleanString(nu.Bio)
	nu.Avatar = core.CleanString(nu.Avatar)
	nu.Skills = core.CleanStrings(nu.Skills)
	return core.ValidateStruct(nu)
}

// UpdateProfile defines what information may be provided to modify a User's profile.
// The profile is replaced as a whole.
type UpdateProfile struct {
	Bio    string   `json:"bio"`
	Avatar string   `json:"avatar" validate:"omitempty,url"`
	Skills []string `json:"skills"`
}

func (up *UpdateProfile) Validate() error {
	up.Bio = core.CleanString(up.Bio)
	up.Avatar = core.CleanString(up.Avatar)
	up.Skills = core.CleanStrings(up.Skills)
	return core.ValidateStruct(up)
}

func (up UpdateProfile) Profile() Profile {
	return Profile{Bio: up.Bio, Avatar: up.Avatar, Skills: up.Skills}
}
