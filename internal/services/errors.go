package services

import "errors"

// Error kinds raised by the service layer. Handlers translate these to HTTP
// statuses; services never perform that mapping themselves.
var (
	// ErrNotFound means the addressed project or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but lacks the required
	// role tier on the project.
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound means a user named as the target of an operation (e.g.
	// a participant to add) does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyMember means the target user already holds some association
	// on the project, whichever role it is.
	ErrAlreadyMember = errors.New("user is already a member of this project")

	// ErrDuplicateFilename means another document in the same project already
	// has the requested filename.
	ErrDuplicateFilename = errors.New("project already has a document with this filename")

	// ErrInvalidFilename means the filename is empty, contains a path
	// separator, or is a relative path element like "..".
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrUsernameTaken means the registration username is already in use.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; login failures are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
