package userservice

import (
	"regexp"

	"github.com/hustleworks/hustleblog/internal/common"
)

var (
	EmailRX     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	UppercaseRX = regexp.MustCompile("[A-Z]")
	LowercaseRX = regexp.MustCompile("[a-z]")
	NumberRX    = regexp.MustCompile("[0-9]")
)

func validateFullname(v *common.Validator, fullname string) {
	v.Check(fullname != "", "fullname", "must be provided")
	v.Check(len(fullname) >= 3, "fullname", "must be at least 3 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

// Some frontend copy still advertises an 8 character minimum; the enforced
// bound is 6 and the message states it.
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")

	ok := v.CheckStringLength(password, 6, 20) &&
		v.Matches(password, NumberRX) &&
		v.Matches(password, LowercaseRX) &&
		v.Matches(password, UppercaseRX)
	v.Check(ok, "password", "must be between 6 and 20 characters long and contain at least one digit, one lowercase letter, and one uppercase letter")
}
