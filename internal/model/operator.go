package model

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// pinPattern is the rule the original tool enforces on operator PINs.
var pinPattern = regexp.MustCompile(`^[a-zA-Z0-9]{4,10}$`)

// Operator is the person running the tool. The deployment is
// single-operator; Role is informational, not a privilege matrix.
type Operator struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required"`
	PINHash  string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     string `gorm:"type:varchar(20);not null;default:admin" json:"role"`
}

func (Operator) TableName() string {
	return "operators"
}

// ValidPIN reports whether a PIN satisfies the 4-10 alphanumeric rule.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// SetPIN hashes and sets the operator's PIN.
func (o *Operator) SetPIN(pin string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.PINHash = string(hashed)
	return nil
}

// CheckPIN verifies a PIN against the stored hash.
func (o *Operator) CheckPIN(pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(o.PINHash), []byte(pin)) == nil
}
