package domain

// DocumentMeta stores metadata about a file uploaded by an applicant.
// The actual file resides in object storage under StorageKey.
type DocumentMeta struct {
	FileName    string `bson:"fileName" json:"fileName"`       // Original filename provided by the applicant
	FileSize    int64  `bson:"fileSize" json:"fileSize"`       // Size in bytes
	ContentType string `bson:"contentType" json:"contentType"` // MIME type (application/pdf or image/jpeg)
	StorageKey  string `bson:"storageKey" json:"storageKey"`   // Opaque key in the storage bucket
}
