package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/hack4good-26/GrantAI/core"
)

// Key prefixes for different data types
const (
	grantRecordPrefix  = "grarec"
	resultRecordPrefix = "resrec"
	resultDatePrefix   = "resrecd"
	resultIDSeq        = "resrecseq"
)

// makeGrantKey generates a key for a grant by ID.
func makeGrantKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", grantRecordPrefix, id))
}

// makeResultKey generates a key for a match result by ID.
func makeResultKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", resultRecordPrefix, id))
}

// makeResultDateKey generates a composite key for the result date index.
// Format: prefix:timestamp:id
func makeResultDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := resultDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialResultDateKey generates a partial key for date range scans.
// Format: prefix:timestamp
func makePartialResultDateKey(timestamp time.Time) []byte {
	prefix := resultDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
