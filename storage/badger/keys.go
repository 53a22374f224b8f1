package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/inquest/core"
)

// Key prefixes for different data types
const (
	documentPrefix      = "docrec"
	documentIDSeq       = "docrecseq"
	jobPrefix           = "jobrec"
	jobQueuePrefix      = "jobq"
	jobDocumentPrefix   = "jobrecd"
	jobIDSeq            = "jobrecseq"
	entityPrefix        = "entrec"
	entityTuplePrefix   = "entcanon"
	mentionPrefix       = "menrec"
	mentionDocPrefix    = "menrecd"
	mentionEntityPrefix = "menrece"
	mentionIDSeq        = "menrecseq"
	embeddingPrefix     = "embrec"
	embeddingDocPrefix  = "embrecd"
	embeddingIDSeq      = "embrecseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeJobKey generates a key for a processing job by ID.
func makeJobKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobPrefix, id))
}

// makeJobQueueKey generates a composite key for the queued-job index.
// Format: prefix:priority:createdAt:id, all big-endian so lexicographic
// iteration yields priority ascending, then creation time ascending.
func makeJobQueueKey(priority int, createdAt time.Time, id core.ID) []byte {
	prefix := jobQueuePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes each for priority, timestamp, ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(priority))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeJobDocumentKey generates a composite key for the per-document job index.
// Format: prefix:documentID:jobID
func makeJobDocumentKey(documentID, jobID core.ID) []byte {
	prefix := jobDocumentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(jobID))
	return buf
}

// makePartialJobDocumentKey generates a partial key for per-document job queries.
func makePartialJobDocumentKey(documentID core.ID) []byte {
	prefix := jobDocumentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeEntityKey generates a key for an entity by ID.
func makeEntityKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entityPrefix, id))
}

// makeEntityTupleKey generates a composite key for entity lookup by (type, canonical).
// Format: prefix:type:canonical
func makeEntityTupleKey(canonical, entityType string) []byte {
	prefix := entityTuplePrefix + ":"
	totalSize := len(prefix) + len(entityType) + 1 + len(canonical)
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(entityType))
	buf[offset] = ':'
	offset++
	copy(buf[offset:], []byte(canonical))
	return buf
}

// makeMentionKey generates a key for an entity mention by ID.
func makeMentionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", mentionPrefix, id))
}

// makeMentionDocKey generates a composite key for the per-document mention index.
// Format: prefix:documentID:mentionID
func makeMentionDocKey(documentID, mentionID core.ID) []byte {
	prefix := mentionDocPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(mentionID))
	return buf
}

// makePartialMentionDocKey generates a partial key for per-document mention queries.
func makePartialMentionDocKey(documentID core.ID) []byte {
	prefix := mentionDocPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeMentionEntityKey generates a composite key for the per-entity mention index.
// Format: prefix:entityID:mentionID
func makeMentionEntityKey(entityID, mentionID core.ID) []byte {
	prefix := mentionEntityPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(entityID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(mentionID))
	return buf
}

// makePartialMentionEntityKey generates a partial key for per-entity mention queries.
func makePartialMentionEntityKey(entityID core.ID) []byte {
	prefix := mentionEntityPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(entityID))
	return buf
}

// makeEmbeddingKey generates a key for an embedding by ID.
func makeEmbeddingKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingPrefix, id))
}

// makeEmbeddingDocKey generates a composite key for the per-document embedding index.
// Format: prefix:documentID:chunkIndex — iteration yields chunk order.
func makeEmbeddingDocKey(documentID core.ID, chunkIndex int) []byte {
	prefix := embeddingDocPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkIndex))
	return buf
}

// makePartialEmbeddingDocKey generates a partial key for per-document embedding queries.
func makePartialEmbeddingDocKey(documentID core.ID) []byte {
	prefix := embeddingDocPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}
