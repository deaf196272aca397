package manifestxml

import "errors"

var (
	ErrManifestNotFound   = errors.New("manifest file does not exist")
	ErrMalformedXML       = errors.New("unable to parse manifest XML")
	ErrMissingProjectName = errors.New("<project> is missing the name attribute")
	ErrMissingProjectPath = errors.New("<project> is missing the path attribute")
	ErrMissingActionPaths = errors.New("file action is missing src or dest")
)
