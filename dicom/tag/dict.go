package tag

import "github.com/dcmkit/radx/dicom/vr"

// Well-known tags beyond the delimiters and file-meta identifiers declared in
// tag.go. These cover the attributes exercised by the dataset reader, the
// pixel data extractor, and the de-identification profiles.
//
// DICOM Standard Reference (PS3.6 Registry of DICOM Data Elements):
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html
var (
	// SOP Common / identification
	SOPClassUID    = Tag{Group: 0x0008, Element: 0x0016}
	SOPInstanceUID = Tag{Group: 0x0008, Element: 0x0018}

	// File Meta (group 0x0002), beyond what tag.go already declares
	FileMetaInformationVersion = Tag{Group: 0x0002, Element: 0x0001}
	MediaStorageSOPClassUID    = Tag{Group: 0x0002, Element: 0x0002}
	MediaStorageSOPInstanceUID = Tag{Group: 0x0002, Element: 0x0003}
	ImplementationClassUID     = Tag{Group: 0x0002, Element: 0x0012}
	ImplementationVersionName  = Tag{Group: 0x0002, Element: 0x0013}

	// General Image / Instance dates and times
	InstanceCreationDate = Tag{Group: 0x0008, Element: 0x0012}
	InstanceCreationTime = Tag{Group: 0x0008, Element: 0x0013}
	InstanceCreatorUID   = Tag{Group: 0x0008, Element: 0x0014}
	AcquisitionDateTime  = Tag{Group: 0x0008, Element: 0x002A}
	StudyDate            = Tag{Group: 0x0008, Element: 0x0020}
	SeriesDate           = Tag{Group: 0x0008, Element: 0x0021}
	AcquisitionDate      = Tag{Group: 0x0008, Element: 0x0022}
	ContentDate          = Tag{Group: 0x0008, Element: 0x0023}
	StudyTime            = Tag{Group: 0x0008, Element: 0x0030}
	SeriesTime           = Tag{Group: 0x0008, Element: 0x0031}
	AcquisitionTime      = Tag{Group: 0x0008, Element: 0x0032}
	ContentTime          = Tag{Group: 0x0008, Element: 0x0033}

	// Physicians, institutions, study/series identification
	AccessionNumber                     = Tag{Group: 0x0008, Element: 0x0050}
	IssuerOfAccessionNumberSequence     = Tag{Group: 0x0008, Element: 0x0051}
	QueryRetrieveLevel                  = Tag{Group: 0x0008, Element: 0x0052}
	Modality                            = Tag{Group: 0x0008, Element: 0x0060}
	ReferencedStudySequence             = Tag{Group: 0x0008, Element: 0x1110}
	DerivationDescription               = Tag{Group: 0x0008, Element: 0x2111}
	InstitutionName                     = Tag{Group: 0x0008, Element: 0x0080}
	InstitutionAddress                  = Tag{Group: 0x0008, Element: 0x0081}
	InstitutionalDepartmentName         = Tag{Group: 0x0008, Element: 0x1040}
	ReferringPhysicianName              = Tag{Group: 0x0008, Element: 0x0090}
	ReferringPhysicianAddress           = Tag{Group: 0x0008, Element: 0x0092}
	ReferringPhysicianTelephoneNumbers  = Tag{Group: 0x0008, Element: 0x0094}
	StationName                        = Tag{Group: 0x0008, Element: 0x1010}
	StudyDescription                   = Tag{Group: 0x0008, Element: 0x1030}
	SeriesDescription                  = Tag{Group: 0x0008, Element: 0x103E}
	PhysiciansOfRecord                 = Tag{Group: 0x0008, Element: 0x1048}
	NameOfPhysiciansReadingStudy       = Tag{Group: 0x0008, Element: 0x1060}
	OperatorsName                      = Tag{Group: 0x0008, Element: 0x1070}
	AdmittingDiagnosesDescription      = Tag{Group: 0x0008, Element: 0x1080}
	ImageComments                      = Tag{Group: 0x0020, Element: 0x4000}
	RequestingPhysician                = Tag{Group: 0x0032, Element: 0x1032}
	RequestingService                  = Tag{Group: 0x0032, Element: 0x1033}
	RequestedProcedureDescription      = Tag{Group: 0x0032, Element: 0x1060}
	PerformingPhysicianName            = Tag{Group: 0x0008, Element: 0x1050}
	ConsultingPhysicianName            = Tag{Group: 0x0008, Element: 0x009C}
	ProtocolName                       = Tag{Group: 0x0018, Element: 0x1030}
	RequestAttributesSequence          = Tag{Group: 0x0040, Element: 0x0275}
	PerformedProcedureStepStartDate    = Tag{Group: 0x0040, Element: 0x0244}
	PerformedProcedureStepStartTime    = Tag{Group: 0x0040, Element: 0x0245}
	PerformedProcedureStepEndDate      = Tag{Group: 0x0040, Element: 0x0250}
	PerformedProcedureStepEndTime      = Tag{Group: 0x0040, Element: 0x0251}
	PerformedProcedureStepDescription  = Tag{Group: 0x0040, Element: 0x0254}
	DeviceSerialNumber                 = Tag{Group: 0x0018, Element: 0x1000}
	CurrentPatientLocation             = Tag{Group: 0x0038, Element: 0x0300}
	FrameComments                      = Tag{Group: 0x0020, Element: 0x9158}
	ModifiedAttributesSequence         = Tag{Group: 0x0400, Element: 0x0550}
	OriginalAttributesSequence         = Tag{Group: 0x0400, Element: 0x0561}
	TimezoneOffsetFromUTC              = Tag{Group: 0x0008, Element: 0x0201}
	DigitalSignaturesSequence          = Tag{Group: 0x0400, Element: 0x0100}
	InstanceNumber                     = Tag{Group: 0x0020, Element: 0x0013}

	// Study / Series instance identification
	StudyInstanceUID  = Tag{Group: 0x0020, Element: 0x000D}
	SeriesInstanceUID = Tag{Group: 0x0020, Element: 0x000E}
	StudyID           = Tag{Group: 0x0020, Element: 0x0010}
	SeriesNumber      = Tag{Group: 0x0020, Element: 0x0011}

	// Patient Module
	PatientName                 = Tag{Group: 0x0010, Element: 0x0010}
	PatientID                   = Tag{Group: 0x0010, Element: 0x0020}
	PatientBirthDate            = Tag{Group: 0x0010, Element: 0x0030}
	PatientBirthTime            = Tag{Group: 0x0010, Element: 0x0032}
	PatientSex                  = Tag{Group: 0x0010, Element: 0x0040}
	PatientAge                  = Tag{Group: 0x0010, Element: 0x1010}
	PatientSize                 = Tag{Group: 0x0010, Element: 0x1020}
	PatientWeight               = Tag{Group: 0x0010, Element: 0x1030}
	OtherPatientIDs             = Tag{Group: 0x0010, Element: 0x1000}
	OtherPatientNames           = Tag{Group: 0x0010, Element: 0x1001}
	PatientBirthName            = Tag{Group: 0x0010, Element: 0x1005}
	PatientMotherBirthName      = Tag{Group: 0x0010, Element: 0x1060}
	MedicalRecordLocator        = Tag{Group: 0x0010, Element: 0x1090}
	EthnicGroup                 = Tag{Group: 0x0010, Element: 0x2160}
	PatientComments             = Tag{Group: 0x0010, Element: 0x4000}
	PatientSpeciesDescription   = Tag{Group: 0x0010, Element: 0x2201}
	PatientBreedDescription     = Tag{Group: 0x0010, Element: 0x2292}
	ResponsiblePerson           = Tag{Group: 0x0010, Element: 0x2297}
	ResponsibleOrganization     = Tag{Group: 0x0010, Element: 0x2299}
	PatientIdentityRemoved      = Tag{Group: 0x0012, Element: 0x0062}
	PatientSexNeutered          = Tag{Group: 0x0010, Element: 0x2203}
	PatientInstitutionResidence = Tag{Group: 0x0038, Element: 0x0400}
	AdditionalPatientHistory    = Tag{Group: 0x0010, Element: 0x21B0}
	Occupation                  = Tag{Group: 0x0010, Element: 0x2180}
	MilitaryRank                = Tag{Group: 0x0010, Element: 0x1080}
	BranchOfService             = Tag{Group: 0x0010, Element: 0x1081}
	CountryOfResidence          = Tag{Group: 0x0010, Element: 0x2150}
	RegionOfResidence           = Tag{Group: 0x0010, Element: 0x2152}

	// Person / text observation attributes used by structured content items
	PersonName             = Tag{Group: 0x0040, Element: 0xA123}
	PersonAddress           = Tag{Group: 0x0040, Element: 0x1102}
	PersonTelephoneNumbers  = Tag{Group: 0x0040, Element: 0x1103}
	TextComments            = Tag{Group: 0x4000, Element: 0x4000}
	TextString              = Tag{Group: 0x2030, Element: 0x0020}

	// Image Pixel Module (PS3.3 C.7.6.3)
	SamplesPerPixel           = Tag{Group: 0x0028, Element: 0x0002}
	PhotometricInterpretation = Tag{Group: 0x0028, Element: 0x0004}
	PlanarConfiguration       = Tag{Group: 0x0028, Element: 0x0006}
	NumberOfFrames            = Tag{Group: 0x0028, Element: 0x0008}
	Rows                      = Tag{Group: 0x0028, Element: 0x0010}
	Columns                   = Tag{Group: 0x0028, Element: 0x0011}
	BitsAllocated             = Tag{Group: 0x0028, Element: 0x0100}
	BitsStored                = Tag{Group: 0x0028, Element: 0x0101}
	HighBit                   = Tag{Group: 0x0028, Element: 0x0102}
	PixelRepresentation       = Tag{Group: 0x0028, Element: 0x0103}
)

// Info describes a single tag's registry entry: its standard VRs, name,
// keyword, value multiplicity and retired status.
//
// TagDict is intentionally a partial registry. It covers the attributes this
// module's parser, pixel extractor and de-identification profiles actually
// consult; it is not a transcription of the full PS3.6 registry. For tags
// absent from TagDict, Find returns an error, except for even-group
// (gggg,0000) group length tags, which resolve to GenericGroupLength.
var TagDict = map[Tag]Info{
	FileMetaInformationGroupLength: {FileMetaInformationGroupLength, []vr.VR{vr.UnsignedLong}, "File Meta Information Group Length", "FileMetaInformationGroupLength", "1", false},
	FileMetaInformationVersion:     {FileMetaInformationVersion, []vr.VR{vr.OtherByte}, "File Meta Information Version", "FileMetaInformationVersion", "1", false},
	MediaStorageSOPClassUID:        {MediaStorageSOPClassUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Class UID", "MediaStorageSOPClassUID", "1", false},
	MediaStorageSOPInstanceUID:     {MediaStorageSOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID", "1", false},
	TransferSyntaxUID:              {TransferSyntaxUID, []vr.VR{vr.UniqueIdentifier}, "Transfer Syntax UID", "TransferSyntaxUID", "1", false},
	ImplementationClassUID:         {ImplementationClassUID, []vr.VR{vr.UniqueIdentifier}, "Implementation Class UID", "ImplementationClassUID", "1", false},
	ImplementationVersionName:      {ImplementationVersionName, []vr.VR{vr.ShortString}, "Implementation Version Name", "ImplementationVersionName", "1", false},
	SpecificCharacterSet:           {SpecificCharacterSet, []vr.VR{vr.CodeString}, "Specific Character Set", "SpecificCharacterSet", "1-n", false},

	SOPClassUID:                        {SOPClassUID, []vr.VR{vr.UniqueIdentifier}, "SOP Class UID", "SOPClassUID", "1", false},
	SOPInstanceUID:                     {SOPInstanceUID, []vr.VR{vr.UniqueIdentifier}, "SOP Instance UID", "SOPInstanceUID", "1", false},
	InstanceCreationDate:                {InstanceCreationDate, []vr.VR{vr.Date}, "Instance Creation Date", "InstanceCreationDate", "1", false},
	InstanceCreationTime:                {InstanceCreationTime, []vr.VR{vr.Time}, "Instance Creation Time", "InstanceCreationTime", "1", false},
	InstanceCreatorUID:                  {InstanceCreatorUID, []vr.VR{vr.UniqueIdentifier}, "Instance Creator UID", "InstanceCreatorUID", "1", false},
	AcquisitionDateTime:                  {AcquisitionDateTime, []vr.VR{vr.DateTime}, "Acquisition DateTime", "AcquisitionDateTime", "1", false},
	StudyDate:                           {StudyDate, []vr.VR{vr.Date}, "Study Date", "StudyDate", "1", false},
	SeriesDate:                          {SeriesDate, []vr.VR{vr.Date}, "Series Date", "SeriesDate", "1", false},
	AcquisitionDate:                     {AcquisitionDate, []vr.VR{vr.Date}, "Acquisition Date", "AcquisitionDate", "1", false},
	ContentDate:                         {ContentDate, []vr.VR{vr.Date}, "Content Date", "ContentDate", "1", false},
	StudyTime:                           {StudyTime, []vr.VR{vr.Time}, "Study Time", "StudyTime", "1", false},
	SeriesTime:                          {SeriesTime, []vr.VR{vr.Time}, "Series Time", "SeriesTime", "1", false},
	AcquisitionTime:                     {AcquisitionTime, []vr.VR{vr.Time}, "Acquisition Time", "AcquisitionTime", "1", false},
	ContentTime:                         {ContentTime, []vr.VR{vr.Time}, "Content Time", "ContentTime", "1", false},
	AccessionNumber:                     {AccessionNumber, []vr.VR{vr.ShortString}, "Accession Number", "AccessionNumber", "1", false},
	IssuerOfAccessionNumberSequence:     {IssuerOfAccessionNumberSequence, []vr.VR{vr.SequenceOfItems}, "Issuer of Accession Number Sequence", "IssuerOfAccessionNumberSequence", "1", false},
	QueryRetrieveLevel:                  {QueryRetrieveLevel, []vr.VR{vr.CodeString}, "Query/Retrieve Level", "QueryRetrieveLevel", "1", false},
	Modality:                            {Modality, []vr.VR{vr.CodeString}, "Modality", "Modality", "1", false},
	ReferencedStudySequence:             {ReferencedStudySequence, []vr.VR{vr.SequenceOfItems}, "Referenced Study Sequence", "ReferencedStudySequence", "1-n", false},
	DerivationDescription:               {DerivationDescription, []vr.VR{vr.ShortText}, "Derivation Description", "DerivationDescription", "1", false},
	InstitutionName:                     {InstitutionName, []vr.VR{vr.LongString}, "Institution Name", "InstitutionName", "1", false},
	InstitutionAddress:                  {InstitutionAddress, []vr.VR{vr.ShortText}, "Institution Address", "InstitutionAddress", "1", false},
	InstitutionalDepartmentName:         {InstitutionalDepartmentName, []vr.VR{vr.LongString}, "Institutional Department Name", "InstitutionalDepartmentName", "1", false},
	ReferringPhysicianName:              {ReferringPhysicianName, []vr.VR{vr.PersonName}, "Referring Physician's Name", "ReferringPhysicianName", "1", false},
	ReferringPhysicianAddress:           {ReferringPhysicianAddress, []vr.VR{vr.ShortText}, "Referring Physician's Address", "ReferringPhysicianAddress", "1", false},
	ReferringPhysicianTelephoneNumbers:  {ReferringPhysicianTelephoneNumbers, []vr.VR{vr.ShortString}, "Referring Physician's Telephone Numbers", "ReferringPhysicianTelephoneNumbers", "1-n", false},
	StationName:                         {StationName, []vr.VR{vr.ShortString}, "Station Name", "StationName", "1", false},
	StudyDescription:                    {StudyDescription, []vr.VR{vr.LongString}, "Study Description", "StudyDescription", "1", false},
	SeriesDescription:                   {SeriesDescription, []vr.VR{vr.LongString}, "Series Description", "SeriesDescription", "1", false},
	PhysiciansOfRecord:                  {PhysiciansOfRecord, []vr.VR{vr.PersonName}, "Physician(s) of Record", "PhysiciansOfRecord", "1-n", false},
	NameOfPhysiciansReadingStudy:        {NameOfPhysiciansReadingStudy, []vr.VR{vr.PersonName}, "Name of Physician(s) Reading Study", "NameOfPhysiciansReadingStudy", "1-n", false},
	OperatorsName:                       {OperatorsName, []vr.VR{vr.PersonName}, "Operators' Name", "OperatorsName", "1-n", false},
	AdmittingDiagnosesDescription:       {AdmittingDiagnosesDescription, []vr.VR{vr.LongString}, "Admitting Diagnoses Description", "AdmittingDiagnosesDescription", "1-n", false},
	ImageComments:                       {ImageComments, []vr.VR{vr.LongText}, "Image Comments", "ImageComments", "1", false},
	RequestingPhysician:                 {RequestingPhysician, []vr.VR{vr.PersonName}, "Requesting Physician", "RequestingPhysician", "1", false},
	RequestingService:                   {RequestingService, []vr.VR{vr.LongString}, "Requesting Service", "RequestingService", "1", false},
	RequestedProcedureDescription:       {RequestedProcedureDescription, []vr.VR{vr.LongString}, "Requested Procedure Description", "RequestedProcedureDescription", "1", false},
	PerformingPhysicianName:             {PerformingPhysicianName, []vr.VR{vr.PersonName}, "Performing Physician's Name", "PerformingPhysicianName", "1-n", false},
	ConsultingPhysicianName:             {ConsultingPhysicianName, []vr.VR{vr.PersonName}, "Consulting Physician's Name", "ConsultingPhysicianName", "1-n", false},
	ProtocolName:                        {ProtocolName, []vr.VR{vr.LongString}, "Protocol Name", "ProtocolName", "1", false},
	RequestAttributesSequence:           {RequestAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Request Attributes Sequence", "RequestAttributesSequence", "1", false},
	PerformedProcedureStepStartDate:     {PerformedProcedureStepStartDate, []vr.VR{vr.Date}, "Performed Procedure Step Start Date", "PerformedProcedureStepStartDate", "1", false},
	PerformedProcedureStepStartTime:     {PerformedProcedureStepStartTime, []vr.VR{vr.Time}, "Performed Procedure Step Start Time", "PerformedProcedureStepStartTime", "1", false},
	PerformedProcedureStepEndDate:       {PerformedProcedureStepEndDate, []vr.VR{vr.Date}, "Performed Procedure Step End Date", "PerformedProcedureStepEndDate", "1", false},
	PerformedProcedureStepEndTime:       {PerformedProcedureStepEndTime, []vr.VR{vr.Time}, "Performed Procedure Step End Time", "PerformedProcedureStepEndTime", "1", false},
	PerformedProcedureStepDescription:   {PerformedProcedureStepDescription, []vr.VR{vr.LongString}, "Performed Procedure Step Description", "PerformedProcedureStepDescription", "1", false},
	DeviceSerialNumber:                  {DeviceSerialNumber, []vr.VR{vr.LongString}, "Device Serial Number", "DeviceSerialNumber", "1", false},
	CurrentPatientLocation:              {CurrentPatientLocation, []vr.VR{vr.LongString}, "Current Patient Location", "CurrentPatientLocation", "1", false},
	FrameComments:                       {FrameComments, []vr.VR{vr.LongText}, "Frame Comments", "FrameComments", "1", false},
	ModifiedAttributesSequence:          {ModifiedAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Modified Attributes Sequence", "ModifiedAttributesSequence", "1", false},
	OriginalAttributesSequence:          {OriginalAttributesSequence, []vr.VR{vr.SequenceOfItems}, "Original Attributes Sequence", "OriginalAttributesSequence", "1", false},
	TimezoneOffsetFromUTC:               {TimezoneOffsetFromUTC, []vr.VR{vr.ShortString}, "Timezone Offset From UTC", "TimezoneOffsetFromUTC", "1", false},
	DigitalSignaturesSequence:           {DigitalSignaturesSequence, []vr.VR{vr.SequenceOfItems}, "Digital Signatures Sequence", "DigitalSignaturesSequence", "1", false},
	InstanceNumber:                      {InstanceNumber, []vr.VR{vr.IntegerString}, "Instance Number", "InstanceNumber", "1", false},

	StudyInstanceUID:  {StudyInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Study Instance UID", "StudyInstanceUID", "1", false},
	SeriesInstanceUID: {SeriesInstanceUID, []vr.VR{vr.UniqueIdentifier}, "Series Instance UID", "SeriesInstanceUID", "1", false},
	StudyID:           {StudyID, []vr.VR{vr.ShortString}, "Study ID", "StudyID", "1", false},
	SeriesNumber:      {SeriesNumber, []vr.VR{vr.IntegerString}, "Series Number", "SeriesNumber", "1", false},

	PatientName:                 {PatientName, []vr.VR{vr.PersonName}, "Patient's Name", "PatientName", "1", false},
	PatientID:                   {PatientID, []vr.VR{vr.LongString}, "Patient ID", "PatientID", "1", false},
	PatientBirthDate:            {PatientBirthDate, []vr.VR{vr.Date}, "Patient's Birth Date", "PatientBirthDate", "1", false},
	PatientBirthTime:            {PatientBirthTime, []vr.VR{vr.Time}, "Patient's Birth Time", "PatientBirthTime", "1", false},
	PatientSex:                  {PatientSex, []vr.VR{vr.CodeString}, "Patient's Sex", "PatientSex", "1", false},
	PatientAge:                  {PatientAge, []vr.VR{vr.AgeString}, "Patient's Age", "PatientAge", "1", false},
	PatientSize:                 {PatientSize, []vr.VR{vr.DecimalString}, "Patient's Size", "PatientSize", "1", false},
	PatientWeight:               {PatientWeight, []vr.VR{vr.DecimalString}, "Patient's Weight", "PatientWeight", "1", false},
	OtherPatientIDs:              {OtherPatientIDs, []vr.VR{vr.LongString}, "Other Patient IDs", "OtherPatientIDs", "1-n", true},
	OtherPatientNames:            {OtherPatientNames, []vr.VR{vr.PersonName}, "Other Patient Names", "OtherPatientNames", "1-n", false},
	PatientBirthName:             {PatientBirthName, []vr.VR{vr.PersonName}, "Patient's Birth Name", "PatientBirthName", "1", true},
	PatientMotherBirthName:       {PatientMotherBirthName, []vr.VR{vr.PersonName}, "Patient's Mother's Birth Name", "PatientMotherBirthName", "1", false},
	MedicalRecordLocator:         {MedicalRecordLocator, []vr.VR{vr.LongString}, "Medical Record Locator", "MedicalRecordLocator", "1", false},
	EthnicGroup:                  {EthnicGroup, []vr.VR{vr.ShortString}, "Ethnic Group", "EthnicGroup", "1", false},
	PatientComments:              {PatientComments, []vr.VR{vr.LongText}, "Patient Comments", "PatientComments", "1", false},
	PatientSpeciesDescription:    {PatientSpeciesDescription, []vr.VR{vr.LongString}, "Patient Species Description", "PatientSpeciesDescription", "1", false},
	PatientBreedDescription:      {PatientBreedDescription, []vr.VR{vr.ShortString}, "Patient Breed Description", "PatientBreedDescription", "1", false},
	ResponsiblePerson:            {ResponsiblePerson, []vr.VR{vr.PersonName}, "Responsible Person", "ResponsiblePerson", "1", false},
	ResponsibleOrganization:      {ResponsibleOrganization, []vr.VR{vr.LongString}, "Responsible Organization", "ResponsibleOrganization", "1", false},
	PatientIdentityRemoved:       {PatientIdentityRemoved, []vr.VR{vr.CodeString}, "Patient Identity Removed", "PatientIdentityRemoved", "1", false},
	PatientSexNeutered:           {PatientSexNeutered, []vr.VR{vr.CodeString}, "Patient's Sex Neutered", "PatientSexNeutered", "1", false},
	PatientInstitutionResidence:  {PatientInstitutionResidence, []vr.VR{vr.LongString}, "Patient's Institution Residence", "PatientInstitutionResidence", "1", false},
	AdditionalPatientHistory:     {AdditionalPatientHistory, []vr.VR{vr.LongText}, "Additional Patient History", "AdditionalPatientHistory", "1", false},
	Occupation:                   {Occupation, []vr.VR{vr.ShortString}, "Occupation", "Occupation", "1", false},
	MilitaryRank:                 {MilitaryRank, []vr.VR{vr.ShortString}, "Military Rank", "MilitaryRank", "1", false},
	BranchOfService:              {BranchOfService, []vr.VR{vr.LongString}, "Branch of Service", "BranchOfService", "1", false},
	CountryOfResidence:           {CountryOfResidence, []vr.VR{vr.LongString}, "Country of Residence", "CountryOfResidence", "1", false},
	RegionOfResidence:            {RegionOfResidence, []vr.VR{vr.LongString}, "Region of Residence", "RegionOfResidence", "1", false},

	PersonName:            {PersonName, []vr.VR{vr.PersonName}, "Person Name", "PersonName", "1", false},
	PersonAddress:          {PersonAddress, []vr.VR{vr.ShortText}, "Person's Address", "PersonAddress", "1", false},
	PersonTelephoneNumbers: {PersonTelephoneNumbers, []vr.VR{vr.LongString}, "Person's Telephone Numbers", "PersonTelephoneNumbers", "1-n", false},
	TextComments:           {TextComments, []vr.VR{vr.UnlimitedText}, "Text Comments", "TextComments", "1", true},
	TextString:             {TextString, []vr.VR{vr.ShortText}, "Text String", "TextString", "1", false},

	SamplesPerPixel:           {SamplesPerPixel, []vr.VR{vr.UnsignedShort}, "Samples per Pixel", "SamplesPerPixel", "1", false},
	PhotometricInterpretation: {PhotometricInterpretation, []vr.VR{vr.CodeString}, "Photometric Interpretation", "PhotometricInterpretation", "1", false},
	PlanarConfiguration:       {PlanarConfiguration, []vr.VR{vr.UnsignedShort}, "Planar Configuration", "PlanarConfiguration", "1", false},
	NumberOfFrames:            {NumberOfFrames, []vr.VR{vr.IntegerString}, "Number of Frames", "NumberOfFrames", "1", false},
	Rows:                      {Rows, []vr.VR{vr.UnsignedShort}, "Rows", "Rows", "1", false},
	Columns:                   {Columns, []vr.VR{vr.UnsignedShort}, "Columns", "Columns", "1", false},
	BitsAllocated:             {BitsAllocated, []vr.VR{vr.UnsignedShort}, "Bits Allocated", "BitsAllocated", "1", false},
	BitsStored:                {BitsStored, []vr.VR{vr.UnsignedShort}, "Bits Stored", "BitsStored", "1", false},
	HighBit:                   {HighBit, []vr.VR{vr.UnsignedShort}, "High Bit", "HighBit", "1", false},
	PixelRepresentation:       {PixelRepresentation, []vr.VR{vr.UnsignedShort}, "Pixel Representation", "PixelRepresentation", "1", false},
	PixelData:                 {PixelData, []vr.VR{vr.OtherByte, vr.OtherWord}, "Pixel Data", "PixelData", "1", false},
}
