package service

import "golang.org/x/crypto/bcrypt"

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(credential string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(credential), h.Cost)
}

func (h BcryptHasher) Compare(hash []byte, credential string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(credential))
}

var _ CredentialHasher = BcryptHasher{}
