package database

import "regexp"

var credentialPattern = regexp.MustCompile(`:[^:/]*@`)

// RedactURI masks the password of a connection string for display
func RedactURI(uri string) string {
	return credentialPattern.ReplaceAllString(uri, ":****@")
}
