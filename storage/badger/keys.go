package badger

// Key prefixes for different data types
const (
	recordPrefix      = "recprf"
	recordEmailPrefix = "recema"
	documentPrefix    = "docrec"
	documentOwnPrefix = "docown"
)

// makeRecordKey generates a key for a record by ID.
func makeRecordKey(id string) []byte {
	return []byte(recordPrefix + ":" + id)
}

// makeRecordEmailKey generates a key for the unique email index.
// Format: prefix:lowercased-email
func makeRecordEmailKey(email string) []byte {
	return []byte(recordEmailPrefix + ":" + email)
}

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id string) []byte {
	return []byte(documentPrefix + ":" + id)
}

// makeDocumentOwnerKey generates a composite key for the owner index.
// Format: prefix:ownerID:documentID. The 0x00 separator keeps one owner's
// range from bleeding into a longer owner ID that shares its prefix.
func makeDocumentOwnerKey(ownerID, documentID string) []byte {
	buf := make([]byte, 0, len(documentOwnPrefix)+1+len(ownerID)+1+len(documentID))
	buf = append(buf, documentOwnPrefix...)
	buf = append(buf, ':')
	buf = append(buf, ownerID...)
	buf = append(buf, 0x00)
	buf = append(buf, documentID...)
	return buf
}

// makePartialDocumentOwnerKey generates the prefix covering all owner-index
// entries for a single owner.
func makePartialDocumentOwnerKey(ownerID string) []byte {
	buf := make([]byte, 0, len(documentOwnPrefix)+1+len(ownerID)+1)
	buf = append(buf, documentOwnPrefix...)
	buf = append(buf, ':')
	buf = append(buf, ownerID...)
	buf = append(buf, 0x00)
	return buf
}
