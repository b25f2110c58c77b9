package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-kivik/kivik/v4"
)

// ErrNotFound is returned when a document id does not resolve. Services
// translate it into their own taxonomy so handlers never see kivik errors.
var ErrNotFound = errors.New("document not found")

// mapKivikError normalizes kivik failures: 404s become ErrNotFound,
// everything else is wrapped with context.
func mapKivikError(err error, context string) error {
	if kivik.HTTPStatus(err) == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", context, err)
}

// docWithRev converts an entity into a CouchDB document carrying the current
// revision, so a Put replaces instead of conflicting.
func docWithRev(v interface{}, rev string) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if rev != "" {
		doc["_rev"] = rev
	}
	return doc, nil
}
