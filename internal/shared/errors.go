package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// repository errors
const ErrDuplicateID = Error("media id already exists")
const ErrAlbumNotFound = Error("album not found")
const ErrStorage = Error("local store unavailable")

// facade errors
const ErrInvalidMediaType = Error("unsupported media type")
const ErrUpload = Error("upload rejected by collaborator")
