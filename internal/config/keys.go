package config

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/go-server-config/internal/environment"
	"golang.org/x/crypto/blake2b"
)

// Keys is an ordered list of application signing keys.
//
// Text forms use the same list syntax as APP_KEYS (see
// [environment.SplitList]); empty text yields nil.
type Keys []string

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Keys) UnmarshalText(text []byte) error {
	if len(bytes.TrimSpace(text)) == 0 {
		*k = nil
		return nil
	}

	*k = environment.SplitList(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler. Items are joined with
// commas, so a key containing a comma does not survive a round trip.
func (k Keys) MarshalText() ([]byte, error) {
	return []byte(strings.Join(k, ",")), nil
}

// UnmarshalJSON accepts either a JSON array of strings or a single string in
// APP_KEYS list syntax.
func (k *Keys) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*k = list
		return nil
	}

	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return err
	}

	return k.UnmarshalText([]byte(text))
}

// Fingerprints returns a short BLAKE2b-256 digest per key, hex encoded, in
// key order. Safe to log.
func (k Keys) Fingerprints() []string {
	prints := make([]string, 0, len(k))
	for _, key := range k {
		sum := blake2b.Sum256([]byte(key))
		prints = append(prints, hex.EncodeToString(sum[:8]))
	}

	return prints
}
