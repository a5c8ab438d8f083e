package storage

import (
	"fmt"
	"strings"
)

// DestinationKey places a root-level object under its representative's
// directory, e.g. sr1_cust_01.csv -> dct-sales/sr1/sr1_cust_01.csv.
type DestinationKey struct {
	Prefix   string // must end with "/"
	Rep      string
	Filename string
}

func (k DestinationKey) Key() string {
	return fmt.Sprintf("%s%s/%s", k.Prefix, k.Rep, k.Filename)
}

// RepFromFilename extracts the representative identifier from a report
// filename: the token before the first underscore (sr1_cust_01.csv -> sr1).
// Filenames without a separator carry no identifier and are rejected.
func RepFromFilename(filename string) (string, error) {
	rep, _, found := strings.Cut(filename, "_")
	if !found || rep == "" {
		return "", fmt.Errorf("no representative identifier in filename %q", filename)
	}
	return rep, nil
}
