package wayfinder

import (
	"net/url"
	"strings"
)

// LogMaskVal stands in for values kept out of logs.
const LogMaskVal = "xxxxxx"

// Mask overwrites the values of vals under any of keys, ignoring case, with one LogMaskVal.
func Mask(vals url.Values, keys ...string) {
	for k := range vals {
		for _, key := range keys {
			if strings.EqualFold(k, key) {
				vals[k] = []string{LogMaskVal}
				break
			}
		}
	}
}
