package userservice

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/crypto/bcrypt"
)

// Password keeps the plaintext and its digest together while a request is in
// flight. Only the digest is ever stored; it serializes as a plain string so
// federated accounts can carry an empty one.
type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), 10)
	if err != nil {
		return err
	}

	p.Plain = pwd
	p.hash = hash

	return nil
}

func (p *Password) compare(pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(pwd))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

func (p Password) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(p.hash))
}

func (p *Password) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var digest string
	if err := bson.UnmarshalValue(t, data, &digest); err != nil {
		return err
	}

	p.hash = []byte(digest)
	return nil
}
