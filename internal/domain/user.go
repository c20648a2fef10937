package domain

import "time"

type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
	RoleMentor      Role = "mentor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCoordinator, RoleMentor:
		return true
	}

	return false
}

// Identity is the authenticated principal carried in the JWT and the
// request context. Every user belongs to exactly one role table.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile is the role-agnostic view of any user, returned by login and
// the /auth/me endpoint. Role-specific fields are omitted when empty.
type Profile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	Year       int       `json:"year,omitempty"`
	Section    string    `json:"section,omitempty"`
	RegisterNo string    `json:"register_no,omitempty"`
	PhoneNo    string    `json:"phone_no,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Student struct {
	ID         uint      `json:"student_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Department string    `json:"department"`
	Year       int       `json:"year"`
	Section    string    `json:"section"`
	RegisterNo string    `json:"register_no"`
	PhoneNo    string    `json:"phone_no,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s Student) Identity() Identity {
	return Identity{ID: s.ID, Name: s.Name, Email: s.Email, Role: RoleStudent}
}

func (s Student) Profile() Profile {
	return Profile{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Role:       RoleStudent,
		Department: s.Department,
		Year:       s.Year,
		Section:    s.Section,
		RegisterNo: s.RegisterNo,
		PhoneNo:    s.PhoneNo,
		CreatedAt:  s.CreatedAt,
	}
}

type Coordinator struct {
	ID        uint      `json:"coordinator_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Coordinator) Identity() Identity {
	return Identity{ID: c.ID, Name: c.Name, Email: c.Email, Role: RoleCoordinator}
}

func (c Coordinator) Profile() Profile {
	return Profile{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      RoleCoordinator,
		CreatedAt: c.CreatedAt,
	}
}

type Mentor struct {
	ID         uint      `json:"mentor_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Department string    `json:"department"`
	PhoneNo    string    `json:"phone_no,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (m Mentor) Identity() Identity {
	return Identity{ID: m.ID, Name: m.Name, Email: m.Email, Role: RoleMentor}
}

func (m Mentor) Profile() Profile {
	return Profile{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       RoleMentor,
		Department: m.Department,
		PhoneNo:    m.PhoneNo,
		CreatedAt:  m.CreatedAt,
	}
}
