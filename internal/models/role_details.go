package models

import (
	"encoding/json"
	"fmt"
)

// RoleDetails holds the fields owned by one role. Each role with extra
// fields has its own variant; roles without extra fields carry nil.
type RoleDetails interface {
	OwnerRole() Role
	// AttachDocument records an uploaded document URL if the variant has a slot for purpose
	AttachDocument(purpose FilePurpose, url string)
}

// MenteeDetails is owned by RoleMentee
type MenteeDetails struct {
	AcademicQualification string   `json:"academicQualification"`
	YearsOfExperience     int      `json:"yearsOfExperience"`
	SchoolName            string   `json:"schoolName"`
	ClassesTaught         []string `json:"classesTaught,omitempty"`
	Subjects              []string `json:"subjects,omitempty"`
	CurrentLevel          string   `json:"currentLevel,omitempty"`
	LanguagePreferences   []string `json:"languagePreferences,omitempty"`
	AreasOfMentoring      []string `json:"areasOfMentoring,omitempty"`
	GovtID                string   `json:"govtId,omitempty"`
}

func (*MenteeDetails) OwnerRole() Role { return RoleMentee }

func (d *MenteeDetails) AttachDocument(purpose FilePurpose, url string) {
	if purpose == FileGovtID && d.GovtID == "" {
		d.GovtID = url
	}
}

// MentorDetails is owned by RoleMentor
type MentorDetails struct {
	Designation            string   `json:"designation"`
	ProfessionalExperience int      `json:"professionalExperience"`
	CurrentWorkStatus      string   `json:"currentWorkStatus,omitempty"`
	LastOrganization       string   `json:"lastOrganization,omitempty"`
	AreasOfMentoring       []string `json:"areasOfMentoring,omitempty"`
	GovtID                 string   `json:"govtId,omitempty"`
	CaseStudy              string   `json:"caseStudy,omitempty"`
	VideoTestimonial       string   `json:"videoTestimonial,omitempty"`
	SupportingDocuments    []string `json:"supportingDocuments,omitempty"`
}

func (*MentorDetails) OwnerRole() Role { return RoleMentor }

func (d *MentorDetails) AttachDocument(purpose FilePurpose, url string) {
	switch purpose {
	case FileGovtID:
		if d.GovtID == "" {
			d.GovtID = url
		}
	case FileCaseStudy:
		if d.CaseStudy == "" {
			d.CaseStudy = url
		}
	case FileVideoTestimonial:
		if d.VideoTestimonial == "" {
			d.VideoTestimonial = url
		}
	case FileSupportingDocuments:
		d.SupportingDocuments = append(d.SupportingDocuments, url)
	}
}

// SchoolHeadDetails is owned by RoleSchoolHead
type SchoolHeadDetails struct {
	Designation string `json:"designation"`
	SchoolName  string `json:"schoolName"`
	SchoolType  string `json:"schoolType,omitempty"`
}

func (*SchoolHeadDetails) OwnerRole() Role { return RoleSchoolHead }

func (*SchoolHeadDetails) AttachDocument(FilePurpose, string) {}

// DecodeRoleDetails restores the variant for role from its JSON form
func DecodeRoleDetails(role Role, raw []byte) (RoleDetails, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var details RoleDetails
	switch role {
	case RoleMentee:
		details = &MenteeDetails{}
	case RoleMentor:
		details = &MentorDetails{}
	case RoleSchoolHead:
		details = &SchoolHeadDetails{}
	default:
		return nil, nil
	}

	if err := json.Unmarshal(raw, details); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", role, err)
	}
	return details, nil
}
