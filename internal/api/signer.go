package api

import (
	"crypto/md5"
	"encoding/hex"
)

// signature derives the per-call auth signature the API recomputes server
// side: lowercase hex MD5 over devID + method + authKey + timestamp.
func signature(devID, authKey, method, timestamp string) string {
	sum := md5.Sum([]byte(devID + method + authKey + timestamp))
	return hex.EncodeToString(sum[:])
}
