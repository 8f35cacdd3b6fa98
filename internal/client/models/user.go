// Package models holds the DTOs exchanged with the careercoach backend.
// Field names mirror the backend's snake_case JSON one to one.
package models

// User is the identity and profile snapshot returned by GET /auth/me.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Username      string       `json:"username"`
	FullName      string       `json:"full_name"`
	Location      string       `json:"location,omitempty"`
	CurrentStatus string       `json:"current_status,omitempty"`
	TargetRole    string       `json:"target_role,omitempty"`
	Timeline      string       `json:"timeline,omitempty"`
	Vision        string       `json:"vision,omitempty"`
	Skills        []string     `json:"skills,omitempty"`
	Education     []Education  `json:"education,omitempty"`
	Experience    []Experience `json:"experience,omitempty"`
	Projects      []Project    `json:"projects,omitempty"`
}

// DisplayName prefers the full name and falls back to username, then email.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

func (e Education) IsBlank() bool {
	return isBlank(e.Institution, e.Degree, e.FieldOfStudy, e.GraduationYear)
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e Experience) IsBlank() bool {
	return isBlank(e.Company, e.Title, e.StartDate, e.EndDate, e.Description)
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

func (p Project) IsBlank() bool {
	return isBlank(p.Name, p.Description, p.URL) && isBlank(p.Technologies...)
}

// ProfileUpdate is the body of PUT /users/me. Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName   *string  `json:"full_name,omitempty"`
	Location   *string  `json:"location,omitempty"`
	TargetRole *string  `json:"target_role,omitempty"`
	Timeline   *string  `json:"timeline,omitempty"`
	Vision     *string  `json:"vision,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}
