package domain

import (
	"crypto/md5"
	"fmt"
)

// DeriveID returns the content-addressed identifier for a free-text-keyed
// entity: the lowercase hex MD5 digest of the name's UTF-8 bytes. Ids are
// derived independently by the scanner, the tag mapper and the search
// index, so two byte-identical names must always collide to the same id.
func DeriveID(name string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(name)))
}
