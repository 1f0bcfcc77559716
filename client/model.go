package client

import (
	"encoding/json"
	"time"
)

// User is the backend identity representation
type User struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Location    string     `json:"location,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	ThemeColor  string     `json:"theme_color,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	DateJoined  *time.Time `json:"date_joined,omitempty"`
	IsStaff     bool       `json:"is_staff,omitempty"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`
}

// AuthResult is the login and registration response
type AuthResult struct {
	Message string          `json:"message,omitempty"`
	Access  string          `json:"access,omitempty"`
	Refresh string          `json:"refresh,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
}

// Profile decodes the embedded user, nil when absent
func (r *AuthResult) Profile() (*User, error) {
	if len(r.User) == 0 || string(r.User) == "null" {
		return nil, nil
	}
	ret := &User{}
	return ret, json.Unmarshal(r.User, ret)
}

// Registration is the account creation input, Username and Name are optional
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// ProfileUpdate carries editable profile fields; nil fields are left unchanged.
// Attaching Avatar or Cover switches the request to multipart.
type ProfileUpdate struct {
	Name       *string   `json:"name,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	Contact    *string   `json:"contact,omitempty"`
	ThemeColor *string   `json:"theme_color,omitempty"`
	Avatar     *FormFile `json:"-"`
	Cover      *FormFile `json:"-"`
}

func (u *ProfileUpdate) fields() map[string]string {
	ret := map[string]string{}
	for name, value := range map[string]*string{
		"name":        u.Name,
		"bio":         u.Bio,
		"location":    u.Location,
		"gender":      u.Gender,
		"contact":     u.Contact,
		"theme_color": u.ThemeColor,
	} {
		if value != nil {
			ret[name] = *value
		}
	}
	return ret
}

func (u *ProfileUpdate) body() any {
	if u.Avatar == nil && u.Cover == nil {
		return u
	}
	form := &Form{Fields: u.fields()}
	if u.Avatar != nil {
		form.Files = append(form.Files, withField(u.Avatar, "avatar"))
	}
	if u.Cover != nil {
		form.Files = append(form.Files, withField(u.Cover, "cover"))
	}
	return form
}

func withField(file *FormFile, field string) *FormFile {
	name := file.Name
	if name == "" {
		name = field
	}
	return &FormFile{Field: field, Name: name, Content: file.Content}
}
