package docstore

import "errors"

var (
	// ErrLoginAlreadyExists is returned by [UserRepository.CreateUser] when
	// the requested login is already taken.
	ErrLoginAlreadyExists = errors.New("user with given login already exists")

	// ErrNoUserWasFound is returned by [UserRepository.FindUserByLogin] when
	// no account matches the given login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDocumentNotFound is returned by [DocumentRepository.GetDocument]
	// when the (collection, docID) pair has never been written.
	ErrDocumentNotFound = errors.New("document is not found")
)
