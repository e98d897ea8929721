package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionType distinguishes the three kinds of applications residents
// can file with the society office.
type SubmissionType string

const (
	TypeShareCertificate SubmissionType = "share-certificate"
	TypeNomination       SubmissionType = "nomination"
	TypeNOCRequest       SubmissionType = "noc-request"
)

// AllSubmissionTypes lists every valid SubmissionType. Used for iteration
// (dashboard stats, index bootstrap) so new types only need registering here.
var AllSubmissionTypes = []SubmissionType{
	TypeShareCertificate,
	TypeNomination,
	TypeNOCRequest,
}

// Valid reports whether t is one of the known submission types.
func (t SubmissionType) Valid() bool {
	switch t {
	case TypeShareCertificate, TypeNomination, TypeNOCRequest:
		return true
	}
	return false
}

// Status type for the submission review lifecycle.
type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusUnderReview      Status = "under-review"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusDocumentRequired Status = "document-required"
)

// Valid reports whether s is a known status. There is deliberately no
// transition graph: an administrator may move a submission from any status
// to any other status.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusDocumentRequired:
		return true
	}
	return false
}

// Submission represents one applicant-initiated record. All three types share
// the common fields; exactly one of the variant payloads is non-nil, matching
// Type. The variant payloads live in the same document so the record store and
// status lookup stay generic over the closed set of types.
type Submission struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AcknowledgementNumber string             `bson:"acknowledgementNumber" json:"acknowledgementNumber"` // Unique, immutable, the only applicant-facing lookup key
	Type                  SubmissionType     `bson:"type" json:"type"`

	FlatNumber string `bson:"flatNumber" json:"flatNumber"`
	FullName   string `bson:"fullName" json:"fullName"`
	Email      string `bson:"email" json:"email"` // Contact for confirmation and status notifications
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`

	// Documents maps a document-type label (e.g. "identity-proof") to the
	// metadata of the uploaded file backing it.
	Documents map[string]DocumentMeta `bson:"documents" json:"documents"`

	Status  Status `bson:"status" json:"status"`
	Remarks string `bson:"remarks,omitempty" json:"remarks,omitempty"` // Admin annotation, overwritten on each status update

	ShareCertificate *ShareCertificateDetails `bson:"shareCertificate,omitempty" json:"shareCertificate,omitempty"`
	Nomination       *NominationDetails       `bson:"nomination,omitempty" json:"nomination,omitempty"`
	NOC              *NOCDetails              `bson:"noc,omitempty" json:"noc,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ShareCertificateDetails carries the fields specific to a share certificate
// application (issue of a new certificate or transfer of an existing one).
type ShareCertificateDetails struct {
	MemberName     string `bson:"memberName" json:"memberName"`
	FolioNumber    string `bson:"folioNumber,omitempty" json:"folioNumber,omitempty"`
	ShareCount     int    `bson:"shareCount" json:"shareCount"`
	TransferReason string `bson:"transferReason,omitempty" json:"transferReason,omitempty"`
}

// NominationDetails carries the nominee particulars for a nomination form.
type NominationDetails struct {
	NomineeName     string `bson:"nomineeName" json:"nomineeName"`
	NomineeRelation string `bson:"nomineeRelation" json:"nomineeRelation"`
	NomineeAddress  string `bson:"nomineeAddress,omitempty" json:"nomineeAddress,omitempty"`
	NomineeShare    int    `bson:"nomineeShare" json:"nomineeShare"` // Percentage of share allotted to the nominee
	WitnessName     string `bson:"witnessName,omitempty" json:"witnessName,omitempty"`
}

// NOCDetails carries the purpose of a no-objection certificate request,
// typically flat transfer or sale within the society.
type NOCDetails struct {
	Purpose         string `bson:"purpose" json:"purpose"`
	TransfereeName  string `bson:"transfereeName,omitempty" json:"transfereeName,omitempty"`
	ApplicantRemark string `bson:"applicantRemark,omitempty" json:"applicantRemark,omitempty"`
}

// RequiredDocuments returns the document-type labels that must be attached
// before a submission of the given type can be accepted.
func RequiredDocuments(t SubmissionType) []string {
	switch t {
	case TypeShareCertificate:
		return []string{"identity-proof"}
	case TypeNomination:
		return []string{"identity-proof", "nominee-identity-proof"}
	case TypeNOCRequest:
		return []string{"identity-proof", "maintenance-clearance"}
	}
	return nil
}
