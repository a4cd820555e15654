package model

// SessionType workout category
type SessionType string

const (
	SessionTypeShooting        SessionType = "Shooting"
	SessionTypeDribblingSkills SessionType = "Dribbling Skills"
	SessionTypeDefense         SessionType = "Defense"
	SessionTypePhysicalStamina SessionType = "Physical Stamina"
	SessionTypeLayup           SessionType = "Layup"
	SessionTypeTechnicalSkills SessionType = "Technical Skills"
)

// Valid reports whether t is one of the known session types
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeShooting, SessionTypeDribblingSkills, SessionTypeDefense,
		SessionTypePhysicalStamina, SessionTypeLayup, SessionTypeTechnicalSkills:
		return true
	}
	return false
}

// Difficulty session difficulty
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulties
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

const (
	MinIntensity = 1
	MaxIntensity = 10
)

// Session workout session template (table sessions)
//
// OwnerID nil means the session is prebuilt catalog content; use Owner()
// rather than comparing the pointer directly.
type Session struct {
	SessionID   uint        `gorm:"primaryKey;autoIncrement"    json:"id"`
	Title       string      `gorm:"type:varchar(100);not null"  json:"title"`
	Type        SessionType `gorm:"type:varchar(30);not null"   json:"type"`
	Difficulty  Difficulty  `gorm:"type:varchar(10);not null"   json:"difficulty"`
	Duration    int         `gorm:"not null"                    json:"duration"`
	Intensity   int         `gorm:"not null"                    json:"intensity"`
	Description string      `gorm:"type:text;not null;default:''" json:"description"`
	ImageURL    *string     `gorm:"type:text"                   json:"image_url"`
	OwnerID     *string     `gorm:"type:uuid;index"             json:"owner_id"`
	BaseModel
}

// TableName table name
func (Session) TableName() string { return "sessions" }

// Owner returns who owns the session
func (s *Session) Owner() Owner {
	if s.OwnerID == nil {
		return SystemOwner()
	}
	return UserOwner(*s.OwnerID)
}

// SetOwner stores o in the nullable owner column
func (s *Session) SetOwner(o Owner) {
	if id, ok := o.UserID(); ok {
		s.OwnerID = &id
		return
	}
	s.OwnerID = nil
}

// Owner System | User(id)
type Owner struct {
	userID string
}

// SystemOwner owner of prebuilt sessions
func SystemOwner() Owner { return Owner{} }

// UserOwner owner of a custom session
func UserOwner(userID string) Owner { return Owner{userID: userID} }

// IsSystem reports whether the owner is the system
func (o Owner) IsSystem() bool { return o.userID == "" }

// UserID returns the owning user id, ok=false for system-owned sessions
func (o Owner) UserID() (string, bool) {
	return o.userID, o.userID != ""
}

// Is reports whether userID owns the session. Always false for system-owned.
func (o Owner) Is(userID string) bool {
	return !o.IsSystem() && userID != "" && o.userID == userID
}
