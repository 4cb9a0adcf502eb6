package mongodb

import (
	"errors"

	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors onto the repository sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicate
	}
	return err
}
