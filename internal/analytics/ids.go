package analytics

import (
	"strings"

	"github.com/google/uuid"
)

// idNamespace scopes the name-based UUIDs of derived entities.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:stocksight:analytics"))

// DeriveID returns a UUIDv5 built from kind and parts. Identical inputs always
// yield the same ID, so repeated analyses of the same window agree.
func DeriveID(kind string, parts ...string) string {
	name := kind + "|" + strings.Join(parts, "|")
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
