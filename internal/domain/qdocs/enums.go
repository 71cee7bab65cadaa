package qdocs

// DrawingStage represents where a drawing sits in the IFA to IFC workflow
type DrawingStage string

const (
	DrawingStageIFA        DrawingStage = "IFA" // Issued For Approval
	DrawingStageIFC        DrawingStage = "IFC" // Issued For Construction
	DrawingStageSuperseded DrawingStage = "Superseded"
)

// IsValid checks if the DrawingStage is a valid value
func (d DrawingStage) IsValid() bool {
	switch d {
	case DrawingStageIFA, DrawingStageIFC, DrawingStageSuperseded:
		return true
	}
	return false
}

// String returns the string representation of DrawingStage
func (d DrawingStage) String() string {
	return string(d)
}

// AllDrawingStages returns all valid DrawingStage values
func AllDrawingStages() []DrawingStage {
	return []DrawingStage{DrawingStageIFA, DrawingStageIFC, DrawingStageSuperseded}
}

// RevisionType represents the issue purpose of a revision
type RevisionType string

const (
	RevisionTypeIFA RevisionType = "IFA"
	RevisionTypeIFC RevisionType = "IFC"
)

// IsValid checks if the RevisionType is a valid value
func (r RevisionType) IsValid() bool {
	return r == RevisionTypeIFA || r == RevisionTypeIFC
}

// String returns the string representation of RevisionType
func (r RevisionType) String() string {
	return string(r)
}

// PartType classifies structural elements extracted from drawings
type PartType string

const (
	PartTypeBeam    PartType = "Beam"
	PartTypePlate   PartType = "Plate"
	PartTypeMember  PartType = "Member"
	PartTypeColumn  PartType = "Column"
	PartTypeFooting PartType = "Footing"
	PartTypeSlab    PartType = "Slab"
	PartTypePile    PartType = "Pile"
	PartTypeMisc    PartType = "Misc"
	PartTypeBolt    PartType = "Bolt"
	PartTypeNut     PartType = "Nut"
	PartTypeWasher  PartType = "Washer"
	PartTypeWeld    PartType = "Weld"
	PartTypeUnknown PartType = "Unknown"
)

// IsValid checks if the PartType is a valid value
func (p PartType) IsValid() bool {
	switch p {
	case PartTypeBeam, PartTypePlate, PartTypeMember, PartTypeColumn, PartTypeFooting,
		PartTypeSlab, PartTypePile, PartTypeMisc, PartTypeBolt, PartTypeNut,
		PartTypeWasher, PartTypeWeld, PartTypeUnknown:
		return true
	}
	return false
}

// String returns the string representation of PartType
func (p PartType) String() string {
	return string(p)
}

// IsStructural reports whether the part is a load-bearing structural element
func (p PartType) IsStructural() bool {
	switch p {
	case PartTypeBeam, PartTypePlate, PartTypeMember, PartTypeColumn,
		PartTypeFooting, PartTypeSlab, PartTypePile:
		return true
	}
	return false
}

// IsFastener reports whether the part is a fastener
func (p PartType) IsFastener() bool {
	switch p {
	case PartTypeBolt, PartTypeNut, PartTypeWasher:
		return true
	}
	return false
}

// AllPartTypes returns all valid PartType values
func AllPartTypes() []PartType {
	return []PartType{
		PartTypeBeam, PartTypePlate, PartTypeMember, PartTypeColumn, PartTypeFooting,
		PartTypeSlab, PartTypePile, PartTypeMisc, PartTypeBolt, PartTypeNut,
		PartTypeWasher, PartTypeWeld, PartTypeUnknown,
	}
}

// FileType represents a drawing file format supported for import
type FileType string

const (
	FileTypeSMLX FileType = "SMLX"
	FileTypeIFC  FileType = "IFC"
	FileTypeDXF  FileType = "DXF"
	FileTypeSTEP FileType = "STEP"
	FileTypeNC   FileType = "NC"
	FileTypePDF  FileType = "PDF"
)

// IsValid checks if the FileType is a valid value
func (f FileType) IsValid() bool {
	switch f {
	case FileTypeSMLX, FileTypeIFC, FileTypeDXF, FileTypeSTEP, FileTypeNC, FileTypePDF:
		return true
	}
	return false
}

// String returns the string representation of FileType
func (f FileType) String() string {
	return string(f)
}

// IsCAD reports whether the file format carries parseable CAD geometry.
// PDF is supported for viewing and calibration but not geometry import.
func (f FileType) IsCAD() bool {
	switch f {
	case FileTypeSMLX, FileTypeIFC, FileTypeDXF, FileTypeSTEP, FileTypeNC:
		return true
	}
	return false
}

// AllFileTypes returns all valid FileType values
func AllFileTypes() []FileType {
	return []FileType{FileTypeSMLX, FileTypeIFC, FileTypeDXF, FileTypeSTEP, FileTypeNC, FileTypePDF}
}

// ParseStatus tracks geometry extraction progress for an uploaded file
type ParseStatus string

const (
	ParseStatusPending   ParseStatus = "Pending"
	ParseStatusParsing   ParseStatus = "Parsing"
	ParseStatusCompleted ParseStatus = "Completed"
	ParseStatusFailed    ParseStatus = "Failed"
)

// IsValid checks if the ParseStatus is a valid value
func (p ParseStatus) IsValid() bool {
	switch p {
	case ParseStatusPending, ParseStatusParsing, ParseStatusCompleted, ParseStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of ParseStatus
func (p ParseStatus) String() string {
	return string(p)
}

// ImportSessionStatus represents the outcome of a CAD import session
type ImportSessionStatus string

const (
	ImportSessionReady         ImportSessionStatus = "Ready"
	ImportSessionPendingReview ImportSessionStatus = "PendingReview"
	ImportSessionFailed        ImportSessionStatus = "Failed"
)

// IsValid checks if the ImportSessionStatus is a valid value
func (i ImportSessionStatus) IsValid() bool {
	switch i {
	case ImportSessionReady, ImportSessionPendingReview, ImportSessionFailed:
		return true
	}
	return false
}

// String returns the string representation of ImportSessionStatus
func (i ImportSessionStatus) String() string {
	return string(i)
}

// QuantityUnit represents measurement units used on takeoffs and part lists
type QuantityUnit string

const (
	QuantityUnitEach        QuantityUnit = "EA"
	QuantityUnitKilogram    QuantityUnit = "KG"
	QuantityUnitMeter       QuantityUnit = "M"
	QuantityUnitSquareMeter QuantityUnit = "M2"
	QuantityUnitCubicMeter  QuantityUnit = "M3"
	QuantityUnitLength      QuantityUnit = "LEN"
)

// IsValid checks if the QuantityUnit is a valid value
func (q QuantityUnit) IsValid() bool {
	switch q {
	case QuantityUnitEach, QuantityUnitKilogram, QuantityUnitMeter,
		QuantityUnitSquareMeter, QuantityUnitCubicMeter, QuantityUnitLength:
		return true
	}
	return false
}

// String returns the string representation of QuantityUnit
func (q QuantityUnit) String() string {
	return string(q)
}

// AllQuantityUnits returns all valid QuantityUnit values
func AllQuantityUnits() []QuantityUnit {
	return []QuantityUnit{
		QuantityUnitEach, QuantityUnitKilogram, QuantityUnitMeter,
		QuantityUnitSquareMeter, QuantityUnitCubicMeter, QuantityUnitLength,
	}
}
