package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultPhotoURL = "https://example.com/default-profile.png"

type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	FirstName string    `json:"firstName" gorm:"type:varchar(50);not null" bson:"first_name"`
	LastName  string    `json:"lastName" gorm:"type:varchar(50)" bson:"last_name"`
	Email     string    `json:"emailId" gorm:"type:varchar(254);uniqueIndex;not null" bson:"email"`
	Password  string    `json:"-" gorm:"not null" bson:"password"`
	Age       int       `json:"age" bson:"age"`
	Gender    string    `json:"gender" gorm:"type:varchar(10)" bson:"gender"`
	PhotoURL  string    `json:"photoUrl" bson:"photo_url"`
	Bio       string    `json:"bio" gorm:"type:varchar(500)" bson:"bio"`
	Skills    []string  `json:"skills" gorm:"serializer:json" bson:"skills"`
	CreatedAt time.Time `json:"createdAt" gorm:"index" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Public returns the projection other users are allowed to see.
func (u User) Public() PublicProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Bio:       u.Bio,
		Skills:    skills,
		Gender:    u.Gender,
		Age:       u.Age,
	}
}

type PublicProfile struct {
	ID        string   `json:"_id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName,omitempty"`
	PhotoURL  string   `json:"photoUrl"`
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
	Gender    string   `json:"gender"`
	Age       int      `json:"age,omitempty"`
}

// ProfilePatch carries a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	FirstName *string   `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string   `json:"lastName" validate:"omitempty,max=50"`
	Email     *string   `json:"emailId" validate:"omitempty,email"`
	Password  *string   `json:"password" validate:"omitempty,strongpassword"`
	Age       *int      `json:"age" validate:"omitempty,gte=18,lte=120"`
	Gender    *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	PhotoURL  *string   `json:"photoUrl" validate:"omitempty,url"`
	Bio       *string   `json:"bio" validate:"omitempty,max=500"`
	Skills    *[]string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// Empty reports whether the patch carries no field at all.
func (p ProfilePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil &&
		p.Age == nil && p.Gender == nil && p.PhotoURL == nil && p.Bio == nil && p.Skills == nil
}

// Apply copies the non-nil fields of p onto u. Password is expected to be
// hashed by the caller already.
func (p ProfilePatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		u.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = strings.ToLower(*p.Gender)
	}
	if p.PhotoURL != nil {
		u.PhotoURL = strings.TrimSpace(*p.PhotoURL)
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Skills != nil {
		u.Skills = append([]string{}, (*p.Skills)...)
	}
}

// NormalizeEmail makes e-mail lookups case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
