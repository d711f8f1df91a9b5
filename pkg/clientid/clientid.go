// Package clientid maps between versioned client identifiers and their
// base identity. A base client "acme" may have rotated siblings "acme-1",
// "acme-2"; all of them authenticate independently but share configuration
// keyed by the base id.
package clientid

import (
	"fmt"
	"strconv"
	"strings"
)

// Base strips a trailing "-<positive int>" version suffix from a client id.
// Ids without a parseable suffix are returned unchanged.
//
// A base id that itself ends in "-<digits>" (e.g. a team named "team-7") is
// indistinguishable from a versioned id by string shape alone. Callers that
// hold stored records should resolve against the record's persisted base id
// and only use Base for inbound ids with no exact match.
func Base(clientID string) string {
	base, _ := Split(clientID)
	return base
}

// Version returns the numeric version suffix of a client id, or 0 for the
// canonical (unsuffixed) form.
func Version(clientID string) int {
	_, v := Split(clientID)
	return v
}

// Split returns the base id and version number of a client id. Version 0
// means the id carries no suffix and is the canonical record.
func Split(clientID string) (base string, version int) {
	i := strings.LastIndexByte(clientID, '-')
	if i <= 0 || i == len(clientID)-1 {
		return clientID, 0
	}

	suffix := clientID[i+1:]
	n, err := strconv.Atoi(suffix)
	if err != nil || n <= 0 || suffix[0] == '0' {
		// Not a version suffix: non-numeric, zero, negative, or padded
		// ("acme-01" is a literal id, not version 1).
		return clientID, 0
	}

	return clientID[:i], n
}

// Next builds the client id for the next duplicate of a base identity.
// maxVersion is the highest version currently live for the base (0 when only
// the canonical record exists).
func Next(base string, maxVersion int) string {
	return fmt.Sprintf("%s-%d", base, maxVersion+1)
}
